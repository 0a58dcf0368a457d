package dynamo

// Lifted is a flat sequence of fixed-size per-step blocks: the control,
// state, or output of a whole trial horizon as one vector. Block i occupies
// [block*i, block*(i+1)).
type Lifted struct {
	data  []float64
	block int
}

func NewLifted(blocks, block int) Lifted {
	return Lifted{data: make([]float64, blocks*block), block: block}
}

// LiftedFrom wraps an existing flat buffer. The length must be an exact
// multiple of the block size.
func LiftedFrom(data []float64, block int) (Lifted, error) {
	if block <= 0 || len(data)%block != 0 {
		return Lifted{}, ErrLiftedLength
	}
	return Lifted{data: data, block: block}, nil
}

func (l Lifted) Blocks() int {
	return len(l.data) / l.block
}

func (l Lifted) BlockSize() int {
	return l.block
}

// Block returns a live view of block i; writes through it mutate the buffer.
func (l Lifted) Block(i int) []float64 {
	return l.data[i*l.block : (i+1)*l.block]
}

func (l Lifted) SetBlock(i int, v []float64) {
	copy(l.Block(i), v)
}

func (l Lifted) Data() []float64 {
	return l.data
}

func (l Lifted) Clone() Lifted {
	c := make([]float64, len(l.data))
	copy(c, l.data)
	return Lifted{data: c, block: l.block}
}

// AddScaled returns a fresh lifted vector equal to l + scale*delta. The
// receiver is not modified.
func (l Lifted) AddScaled(delta []float64, scale float64) (Lifted, error) {
	if len(delta) != len(l.data) {
		return Lifted{}, ErrLiftedLength
	}
	c := l.Clone()
	for i, d := range delta {
		c.data[i] += scale * d
	}
	return c, nil
}

func (l Lifted) IsValid() bool {
	return State(l.data).IsValid()
}
