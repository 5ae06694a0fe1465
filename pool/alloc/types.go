package alloc

// Ref is a payload reference: the byte offset of an allocated payload
// within the arena. The block header sits HeaderSize bytes before it.
type Ref = uint32
