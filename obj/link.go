package obj

// Link merges objects in order and returns the resolved flat binary.
func Link(objects ...*Object) (bin []byte, err error) {
	out := New()

	for _, o := range objects {
		err = out.Extend(o)
		if err != nil {
			return
		}
	}

	return out.Binary()
}
