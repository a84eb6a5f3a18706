package bundle

// adverseFields are metrics where a lower value is the better outcome.
var adverseFields = map[string]struct{}{
	"Fouls per 90": {},
	"Cards per 90": {},
}

// catalogOrder fixes the listing order of the catalog.
var catalogOrder = []string{"summary", "general", "attacking", "passing", "defensive", "shooting"}

var catalog = map[string]Bundle{
	"summary": newBundle("summary", "Ringo metrics",
		Metric{"wSwC", "Shooting"},
		Metric{"wAwC", "Attacking"},
		Metric{"wDcwC", "Positional\ndefense"},
		Metric{"Aerial impact", "Aerial impact"},
		Metric{"wDpwC", "Reactive\ndefense"},
		Metric{"wPwC", "Passing"},
	),
	"general": newBundle("general", "general",
		Metric{"Non-penalty goals per 90", "npGoals\n(90)"},
		Metric{"npxG per 90", "npxG\n(90)"},
		Metric{"npxG per shot", "npxG/shot"},
		Metric{"Shots per 90", "Shots\n(90)"},
		Metric{"Goal conversion, %", "Goal/SoT\nsuccess (%)"},
		Metric{"xA per 90", "xA\n(90)"},
		Metric{"1st, 2nd, 3rd assists", "1st, 2nd, 3rd\nassist (90)"},
		Metric{"Shot assists per 90", "Shot\nassist (90)"},
		Metric{"Crosses per 90", "Crosses\n(90)"},
		Metric{"Accurate crosses, %", "Cross\nacc. (%)"},
		Metric{"Accurate passes, %", "Pass\nacc. (%)"},
		Metric{"Accurate long passes, %", "Long pass\nacc. (%)"},
		Metric{"Successful dribbles per 90", "Success\ndribble (90)"},
		Metric{"Offensive duels won, %", "Off. duel\nwon (%)"},
		Metric{"Progressive passes per 90", "Prog.\npasses (90)"},
		Metric{"Progressive runs per 90", "Prog.\nruns (90)"},
		Metric{"Aerial duels per 90", "Aerial\nduels (90)"},
		Metric{"Aerial duels won, %", "Aerial\nwins (%)"},
		Metric{"Shots blocked per 90", "Shot\nblocks (90)"},
		Metric{"Defensive duels won, %", "Def. duels\nwon (%)"},
		Metric{"PAdj Interceptions", "PAdj\nInt (90)"},
		Metric{"PAdj Sliding tackles", "PAdj\ntackles (90)"},
	),
	"attacking": newBundle("attacking", "attacking",
		Metric{"Non-penalty goals per 90", "npG\n(90)"},
		Metric{"npxG per 90", "npxG\n(90)"},
		Metric{"Shots per 90", "Shots (90)"},
		Metric{"Shots on target per 90", "SoT (90)"},
		Metric{"Goal conversion, %", "G/s\nconversion, %"},
		Metric{"npxG per shot", "npxG/\nshot"},
		Metric{"Offensive duels won per 90", "Off. duels\nwon (90)"},
		Metric{"Offensive duels won, %", "Off. duels\nwon (%)"},
		Metric{"Offensive duels per 90 Ctb %", "Off. duels\nplayer/team (%)"},
		Metric{"Accelerations per 90", "Accelerations"},
		Metric{"Progressive runs per 90", "Prog.\nruns (90)"},
		Metric{"Touches in box per 90", "Touches in\nbox per 90"},
		Metric{"Touches in box per 90 Ctb %", "Touches in\nbox per 90 Ctb %"},
		Metric{"Dribbles per 90", "Dribbles\n(90)"},
		Metric{"Successful dribbles, %", "Successful\ndribbles (%)"},
		Metric{"Dribbles per 90 Ctb %", "Dribbles\nper 90 Ctb %"},
		Metric{"Fouls suffered per 90", "Fouls\nsuffered (90)"},
	),
	"passing": newBundle("passing", "passing",
		Metric{"xA per 90", "xA\n(90)"},
		Metric{"1st, 2nd, 3rd assists", "1st, 2nd, 3rd\nassists (90)"},
		Metric{"Shot assists per 90", "Shot\nassists (90)"},
		Metric{"Crosses per 90", "Crosses per 90"},
		Metric{"Accurate crosses, %", "Accurate\ncrosses, %"},
		Metric{"Crosses per 90 Ctb %", "Crosses\nCtb %"},
		Metric{"PwC", "PwC"},
		Metric{"Long passes per 90", "Long\npasses per 90"},
		Metric{"Accurate long passes, %", "Accurate\nlong passes, %"},
		Metric{"Passes per 90", "Passes per 90"},
		Metric{"Accurate passes per 90", "Accurate\npasses (90)"},
		Metric{"Progressive passes per 90", "Progressive\npasses per 90"},
		Metric{"Accurate progressive passes, %", "Accurate\nprogressive passes, %"},
		Metric{"Forward passes per 90", "Forward\npasses per 90"},
		Metric{"Accurate forward passes, %", "Accurate\nforward passes, %"},
		Metric{"Passes to final third per 90", "Passes to\nfinal third per 90"},
		Metric{"Accurate passes to final third, %", "Accurate passes\nto final third, %"},
	),
	"defensive": newBundle("defensive", "defensive",
		Metric{"Defensive duels won per 90", "Defensive duels\nwon per 90"},
		Metric{"Defensive duels won, %", "Defensive duels\nwon, %"},
		Metric{"Aerial duels won, %", "Aerial duels won, %"},
		Metric{"PAdj Interceptions", "PAdj\nInterceptions"},
		Metric{"PAdj Sliding tackles", "PAdj\nSliding tackles"},
		Metric{"Shots blocked per 90", "Shots blocked\nper 90"},
		Metric{"Fouls per 90", "Fouls per 90"},
		Metric{"Cards per 90", "Cards per 90"},
	),
	"shooting": newBundle("shooting", "swc metrics",
		Metric{"Goal conversion, %", "Goal conversion, %"},
		Metric{"Shots on target per 90", "Shots on target\nper 90"},
		Metric{"Shots on target, %", "Shots\non target, %"},
		Metric{"SoT pTt", "SoT pTt"},
		Metric{"Touches in box per 90", "Touches in box\nper 90"},
		Metric{"SoT/RB", "SoT/RB"},
		Metric{"Goal pTt", "Goal pTt"},
	),
}

func newBundle(key, title string, metrics ...Metric) Bundle {
	b := Bundle{Key: key, Title: title, Metrics: metrics, adverse: make(map[string]struct{})}
	for _, m := range metrics {
		if _, ok := adverseFields[m.Field]; ok {
			b.adverse[m.Field] = struct{}{}
		}
	}
	return b
}
