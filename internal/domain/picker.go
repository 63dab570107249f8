package domain

// PickerState is the model picker's state. Transitions are pure: each
// method returns the next state and leaves the receiver untouched.
type PickerState struct {
	IsOpen  bool
	Query   string
	All     []ModelInfo // full merged list
	Visible []ModelInfo // All filtered by the last applied query
	Loading bool
	Err     error // last load failure, if any
}

// NewPickerState starts from the static list while dynamic sources load.
func NewPickerState(static []ModelInfo) PickerState {
	return PickerState{
		All:     static,
		Visible: static,
		Loading: true,
	}
}

// OnOpen opens the picker.
func (s PickerState) OnOpen() PickerState {
	s.IsOpen = true
	return s
}

// OnClose closes the picker.
func (s PickerState) OnClose() PickerState {
	s.IsOpen = false
	return s
}

// OnQueryChange records the raw query. Visible is updated later by
// OnFilter, once the query settles.
func (s PickerState) OnQueryChange(q string) PickerState {
	s.Query = q
	return s
}

// OnFilter applies q to the full list.
func (s PickerState) OnFilter(q string) PickerState {
	s.Visible = Filter(s.All, q)
	return s
}

// OnLoaded installs a freshly loaded list and re-applies the current query.
// Loading is cleared whether or not err is nil.
func (s PickerState) OnLoaded(models []ModelInfo, err error) PickerState {
	if models != nil {
		s.All = models
	}
	s.Err = err
	s.Loading = false
	s.Visible = Filter(s.All, s.Query)
	return s
}

// OnReload marks the state as loading again.
func (s PickerState) OnReload() PickerState {
	s.Loading = true
	s.Err = nil
	return s
}

// OnSelect closes the picker and returns the chosen pair.
func (s PickerState) OnSelect(m ModelInfo) (PickerState, Selection) {
	s.IsOpen = false
	return s, Selection{Model: m.Name, Provider: m.Provider}
}

// Groups returns Visible grouped by provider.
func (s PickerState) Groups() []Group {
	return GroupByProvider(s.Visible)
}
