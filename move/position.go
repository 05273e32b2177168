package move

// Position identifies a point in the domain by which run ("interval") it
// falls in and its offset within that run. Idx, the absolute index, is only
// meaningful when the owning MoveStructure was built in absolute mode
// (spec §3); relative-mode structures leave it at zero.
type Position struct {
	Interval int
	Offset   uint64
	Idx      uint64
}
