package action

// respondAction speaks a prepared reply. It resolves the moment it
// starts; the words are already chosen.
type respondAction struct {
	base
	text string
}

// NewRespond returns an action that says text as soon as it starts.
func NewRespond(text string) Action {
	return &respondAction{
		base: base{kind: KindRespond},
		text: text,
	}
}

func (a *respondAction) Start(cx *Ctx) {
	if a.text == "" {
		a.finish(false)
		return
	}
	cx.emit("say", a.text)
	a.finish(true)
}

func (a *respondAction) Update(cx *Ctx) {}
