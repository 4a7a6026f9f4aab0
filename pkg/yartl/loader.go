package yartl

// Loader resolves a template name to its source.
type Loader interface {
	Load(name string) (string, error)
}

type MemoryLoader map[string]string

func (m MemoryLoader) Load(name string) (string, error) {
	if s, ok := m[name]; ok {
		return s, nil
	}
	return "", ErrTemplateNotFound{name}
}

type ErrTemplateNotFound struct{ Name string }

func (e ErrTemplateNotFound) Error() string { return "template not found: " + e.Name }

// CompileFrom loads name from l and compiles it.
func CompileFrom(l Loader, name string) (*Template, error) {
	src, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	return Compile(name, src)
}
