package web

import (
	"net/http"
)

// Person is a row of the sample table on the welcome page.
type Person struct {
	Name string
	Age  int
	City string
}

// HomeData holds data for the welcome page
type HomeData struct {
	Base
	ShowSample bool
	Sample     []Person
}

var samplePeople = []Person{
	{"John", 28, "New York"},
	{"Anna", 34, "Paris"},
	{"Peter", 29, "London"},
	{"Linda", 32, "Tokyo"},
}

// Home renders the welcome page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	data := HomeData{
		Base:       h.base(r, sess, "Welcome to the Dashboard! 👋", "home"),
		ShowSample: r.URL.Query().Get("sample") == "1",
	}
	if data.ShowSample {
		data.Sample = samplePeople
	}

	h.render(w, "home.html", data)
}
