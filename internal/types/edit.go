package types

// EditInfo describes a single buffer mutation in byte offsets.
type EditInfo struct {
	Start  int // Start byte of the edit
	OldEnd int // End byte of the replaced text
	NewEnd int // End byte of the inserted text
}

// Delta is the change in buffer length caused by the edit.
func (e EditInfo) Delta() int {
	return e.NewEnd - e.OldEnd
}
