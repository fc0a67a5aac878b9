package cli

// themes is the fixed name → seed URL mapping for --theme. It is part of
// the release artifact and may evolve between releases; it is informative,
// not normative.
var themes = map[string]string{
	"star-wars":   "https://starwars.fandom.com/wiki/Star_Wars",
	"tolkien":     "https://lotr.fandom.com/wiki/Main_Page",
	"witcher":     "https://witcher.fandom.com/wiki/Witcher_Wiki",
	"pokemon":     "https://bulbapedia.bulbagarden.net/wiki/Main_Page",
	"bebop":       "https://cowboybebop.fandom.com/wiki/Cowboy_Bebop_Wiki",
	"greek":       "https://en.wikipedia.org/wiki/Greek_mythology",
	"greco-roman": "https://en.wikipedia.org/wiki/Classical_mythology",
	"lovecraft":   "https://en.wikipedia.org/wiki/Cthulhu_Mythos",
}

func themeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	return names
}
