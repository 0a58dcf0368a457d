// Package models implements the closed set of plant variants the learning
// loop runs against, from a scalar integrator up to feedback-linearized
// multirotors with a thrust dynamic extension.
//
// Every variant implements [dynamo.System]: disturbed true dynamics for
// simulation, a feedback law, and the per-step nominal Jacobians the shared
// lifted-operator builder turns into a sensitivity matrix. Variants with a
// well-defined nominal inversion additionally implement
// [dynamo.FeedForwarder].
//
// Construct variants through New; the set of names is fixed.
package models
