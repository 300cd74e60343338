package bugs

// Instance is a single reported defect.
type Instance struct {
	Type        string
	Rank        int
	Annotations []Annotation

	// Pattern is resolved from Type when the collection is loaded.
	Pattern *Pattern
}

// PrimaryClass returns the first class annotation, if any.
func (b *Instance) PrimaryClass() *ClassAnnotation {
	for _, a := range b.Annotations {
		if c, ok := a.(*ClassAnnotation); ok {
			return c
		}
	}
	return nil
}

// PrimaryMethod returns the first method annotation, if any.
func (b *Instance) PrimaryMethod() *MethodAnnotation {
	for _, a := range b.Annotations {
		if m, ok := a.(*MethodAnnotation); ok {
			return m
		}
	}
	return nil
}

// PrimaryField returns the first field annotation, if any.
func (b *Instance) PrimaryField() *FieldAnnotation {
	for _, a := range b.Annotations {
		if f, ok := a.(*FieldAnnotation); ok {
			return f
		}
	}
	return nil
}

// PrimarySourceLine picks the source line that best represents the bug: an
// explicit source line annotation, then the lines of the primary method or
// field, and finally the primary class with unknown lines.
func (b *Instance) PrimarySourceLine() (*SourceLineAnnotation, bool) {
	for _, a := range b.Annotations {
		if sl, ok := a.(*SourceLineAnnotation); ok {
			return sl, true
		}
	}
	if m := b.PrimaryMethod(); m != nil && m.SourceLines != nil {
		return m.SourceLines, true
	}
	if f := b.PrimaryField(); f != nil && f.SourceLines != nil {
		return f.SourceLines, true
	}
	if c := b.PrimaryClass(); c != nil {
		if c.SourceLines != nil {
			return c.SourceLines, true
		}
		return UnknownSourceLine(c.ClassName, c.SourceFile), true
	}
	return nil, false
}
