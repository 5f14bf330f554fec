// Package decks holds the scenario decks compiled into the server.
package decks

import "kickoff-hq/internal/domain"

const (
	FootballIQ      = "football-iq"
	RouteRunner     = "route-runner"
	FormationFinder = "formation-finder"
)

var (
	footballIQ      = domain.MustDeck(FootballIQ, "Football IQ", footballIQScenarios)
	routeRunner     = domain.MustDeck(RouteRunner, "Route Runner", routeRunnerScenarios)
	formationFinder = domain.MustDeck(FormationFinder, "Formation Finder", formationFinderScenarios)
)

// All returns every built-in deck in catalog order.
func All() []domain.Deck {
	return []domain.Deck{footballIQ, routeRunner, formationFinder}
}

// Catalog lists the games shown in the hub.
func Catalog() []domain.GameInfo {
	return []domain.GameInfo{
		{
			ID:          FootballIQ,
			Title:       "Football IQ",
			Description: "Rules, scoring and game-day basics.",
			Path:        "/games/football-iq",
		},
		{
			ID:          RouteRunner,
			Title:       "Route Runner",
			Description: "Match the drawn route to its name.",
			Path:        "/games/route-runner",
		},
		{
			ID:          FormationFinder,
			Title:       "Formation Finder",
			Description: "Read the offense before the snap.",
			Path:        "/games/formation-finder",
		},
	}
}

func opts(pairs ...string) []domain.Option {
	out := make([]domain.Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Option{ID: pairs[i], Label: pairs[i+1]})
	}
	return out
}

var footballIQScenarios = []domain.Scenario{
	{
		ID:              1,
		Prompt:          domain.Prompt{Text: "How many points is a touchdown worth before the extra point?"},
		Options:         opts("a", "3", "b", "6", "c", "7", "d", "2"),
		CorrectOptionID: "b",
		Explanation:     "A touchdown scores six. The try afterwards adds one or two more.",
	},
	{
		ID:              2,
		Prompt:          domain.Prompt{Text: "How many downs does the offense get to gain 10 yards?"},
		Options:         opts("a", "3", "b", "4", "c", "5"),
		CorrectOptionID: "b",
		Explanation:     "Four downs. Most teams punt or kick on fourth down.",
	},
	{
		ID:              3,
		Prompt:          domain.Prompt{Text: "What is it called when the defense tackles the ball carrier in his own end zone?"},
		Options:         opts("a", "Touchback", "b", "Safety", "c", "Fair catch", "d", "Sack"),
		CorrectOptionID: "b",
		Explanation:     "A safety is worth two points and the scoring team also gets the ball back.",
	},
	{
		ID:              4,
		Prompt:          domain.Prompt{Text: "How many players does each team have on the field?"},
		Options:         opts("a", "9", "b", "10", "c", "11", "d", "12"),
		CorrectOptionID: "c",
		Explanation:     "Eleven a side. Twelve draws a penalty.",
	},
	{
		ID:              5,
		Prompt:          domain.Prompt{Text: "Which official signal means the pass was incomplete?"},
		Options:         opts("a", "Arms straight up", "b", "Arms waved across the body", "c", "Arm pointed forward"),
		CorrectOptionID: "b",
		Explanation:     "Waving the arms across the body, low, signals an incomplete pass.",
	},
}

var routeRunnerScenarios = []domain.Scenario{
	{
		ID: 1,
		Prompt: domain.Prompt{
			Text:  "Straight up the field at full speed. Which route?",
			Route: []domain.Point{{X: 0, Y: 0}, {X: 0, Y: 40}},
		},
		Options:         opts("go", "Go", "slant", "Slant", "out", "Out"),
		CorrectOptionID: "go",
		Explanation:     "A go route is a vertical sprint to beat the defender deep.",
	},
	{
		ID: 2,
		Prompt: domain.Prompt{
			Text:  "Three hard steps, then cut sharply inside at an angle. Which route?",
			Route: []domain.Point{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: -6, Y: 9}},
		},
		Options:         opts("post", "Post", "slant", "Slant", "curl", "Curl", "flat", "Flat"),
		CorrectOptionID: "slant",
		Explanation:     "The slant breaks inside early, a quick-timing throw.",
	},
	{
		ID: 3,
		Prompt: domain.Prompt{
			Text:  "Run ten yards, then turn back toward the quarterback. Which route?",
			Route: []domain.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: -1, Y: 8}},
		},
		Options:         opts("curl", "Curl", "go", "Go", "corner", "Corner"),
		CorrectOptionID: "curl",
		Explanation:     "On a curl the receiver stops and comes back to the ball.",
	},
	{
		ID: 4,
		Prompt: domain.Prompt{
			Text:  "Run ten yards, then break flat toward the sideline. Which route?",
			Route: []domain.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 8, Y: 10}},
		},
		Options:         opts("in", "In", "out", "Out", "post", "Post"),
		CorrectOptionID: "out",
		Explanation:     "The out route breaks to the sideline at a right angle.",
	},
	{
		ID: 5,
		Prompt: domain.Prompt{
			Text:  "Run deep, then angle toward the goal posts. Which route?",
			Route: []domain.Point{{X: 0, Y: 0}, {X: 0, Y: 12}, {X: -8, Y: 25}},
		},
		Options:         opts("corner", "Corner", "post", "Post", "slant", "Slant", "go", "Go"),
		CorrectOptionID: "post",
		Explanation:     "A post route heads for the middle of the field, toward the goal posts.",
	},
}

// Formation coordinates are yards: X across the field from the ball, Y
// behind the line of scrimmage.
var formationFinderScenarios = []domain.Scenario{
	{
		ID: 1,
		Prompt: domain.Prompt{
			Text: "The quarterback stands under center with two backs lined up behind him. Name the formation.",
			Formation: []domain.PlayerMarker{
				{Label: "C", X: 0, Y: 0},
				{Label: "QB", X: 0, Y: 1},
				{Label: "FB", X: 0, Y: 4},
				{Label: "RB", X: 0, Y: 7},
			},
		},
		Options:         opts("i", "I-formation", "shotgun", "Shotgun", "pistol", "Pistol"),
		CorrectOptionID: "i",
		Explanation:     "Fullback and running back stacked behind the quarterback form the I.",
	},
	{
		ID: 2,
		Prompt: domain.Prompt{
			Text: "The quarterback lines up five yards behind the center with a back beside him. Name the formation.",
			Formation: []domain.PlayerMarker{
				{Label: "C", X: 0, Y: 0},
				{Label: "QB", X: 0, Y: 5},
				{Label: "RB", X: 2, Y: 5},
			},
		},
		Options:         opts("i", "I-formation", "shotgun", "Shotgun", "wildcat", "Wildcat"),
		CorrectOptionID: "shotgun",
		Explanation:     "In the shotgun the quarterback takes a direct snap from several yards back.",
	},
	{
		ID: 3,
		Prompt: domain.Prompt{
			Text: "The quarterback is four yards back and the running back is directly behind him. Name the formation.",
			Formation: []domain.PlayerMarker{
				{Label: "C", X: 0, Y: 0},
				{Label: "QB", X: 0, Y: 4},
				{Label: "RB", X: 0, Y: 7},
			},
		},
		Options:         opts("pistol", "Pistol", "shotgun", "Shotgun", "i", "I-formation", "singleback", "Singleback"),
		CorrectOptionID: "pistol",
		Explanation:     "The pistol is a short shotgun with the back lined up behind the quarterback.",
	},
	{
		ID: 4,
		Prompt: domain.Prompt{
			Text: "Four receivers spread wide and no running back. Name the formation.",
			Formation: []domain.PlayerMarker{
				{Label: "C", X: 0, Y: 0},
				{Label: "QB", X: 0, Y: 5},
				{Label: "WR", X: -20, Y: 0},
				{Label: "WR", X: -12, Y: 1},
				{Label: "WR", X: 12, Y: 1},
				{Label: "WR", X: 20, Y: 0},
			},
		},
		Options:         opts("empty", "Empty backfield", "i", "I-formation", "goal", "Goal line"),
		CorrectOptionID: "empty",
		Explanation:     "With no back in the backfield every eligible player is out in the pattern.",
	},
}
