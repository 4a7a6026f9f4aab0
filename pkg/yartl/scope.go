package yartl

// frame binds a single loop variable.
type frame struct {
	name  string
	value Value
}

// scope is the lookup chain for one render call: loop frames stacked on top
// of the root context object. Frames are pushed and popped around each loop
// body, so a binding is visible only while its body renders.
type scope struct {
	root   ObjectValue
	frames []frame
}

func newScope(root Value) *scope {
	obj, _ := AsObject(root)
	return &scope{root: obj}
}

func (s *scope) push(name string, v Value) {
	s.frames = append(s.frames, frame{name: name, value: v})
}

func (s *scope) pop() {
	s.frames[len(s.frames)-1] = frame{}
	s.frames = s.frames[:len(s.frames)-1]
}

// lookup searches innermost frame first, then the root object.
func (s *scope) lookup(name string) (Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			return s.frames[i].value, true
		}
	}
	v, ok := s.root[name]
	return v, ok
}
