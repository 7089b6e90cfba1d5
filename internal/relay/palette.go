package relay

// palette is handed out in order; a joining participant gets the first color
// nobody in the room is using.
var palette = []string{
	"#e6194b",
	"#3cb44b",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#42d4f4",
	"#f032e6",
	"#9a6324",
}

func pickColor(inUse map[string]bool, n int) string {
	for _, c := range palette {
		if !inUse[c] {
			return c
		}
	}
	return palette[n%len(palette)]
}
