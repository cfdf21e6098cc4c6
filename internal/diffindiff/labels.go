package diffindiff

// Labels are the display names of the fbref stats included in reports.
// Bookkeeping stats such as raw minutes are left out.
var Labels = map[string]string{
	"games":                    "Games Played",
	"shots_on_target":          "Shots on Target",
	"npxg":                     "Non-Penalty Expected Goals",
	"shots_per90":              "Shots per 90 Minutes",
	"xg":                       "Expected Goals",
	"minutes_per_start":        "Minutes per Start",
	"minutes_90s":              "90-Minute Periods Played",
	"shots_free_kicks":         "Free Kick Shots",
	"minutes_pct":              "Percentage of Minutes Played",
	"games_starts":             "Games Started",
	"npxg_per_shot":            "Non-Penalty Expected Goals per Shot",
	"goals":                    "Goals Scored",
	"games_subs":               "Substitute Appearances",
	"games_complete":           "Complete Games",
	"average_shot_distance":    "Average Shot Distance",
	"goals_per_shot_on_target": "Goals per Shot on Target",
	"goals_per_shot":           "Goals per Shot",
	"minutes_per_game":         "Minutes per Game",
	"on_xg_for":                "On-Target Expected Goals For",
	"shots":                    "Total Shots",
	"pens_made":                "Penalties Scored",
	"pens_att":                 "Penalties Attempted",
	"on_xg_against":            "On-Target Expected Goals Against",
	"minutes_per_sub":          "Minutes per Substitute Appearance",
	"shots_on_target_pct":      "Shot on Target Percentage",
	"on_goals_against":         "On-Target Goals Against",
	"points_per_game":          "Points per Game",
	"on_goals_for":             "On-Target Goals For",
	"unused_subs":              "Unused Substitute Appearances",
	"shots_on_target_per90":    "Shots on Target per 90 Minutes",
}

func Label(stat string) string {
	if label, ok := Labels[stat]; ok {
		return label
	}
	return stat
}
