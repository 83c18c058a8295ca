package owned

// noCopy may be embedded into structs which must not be copied after first
// use. It is zero-sized; go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
