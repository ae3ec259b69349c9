package narrative

import (
	"fmt"
	"text/template"

	"golang.org/x/text/language"
)

// Topic names a family of messages.
type Topic string

const (
	TopicTrendSummary Topic = "trend_summary"
	TopicVolume       Topic = "volume"
	TopicRegularity   Topic = "regularity"
	TopicPeakMonth    Topic = "peak_month"
	TopicExtremes     Topic = "extremes"
	TopicIntervals    Topic = "intervals"
	TopicTimeOfDay    Topic = "time_of_day"
	TopicHeatmap      Topic = "heatmap"
	TopicSeasonality  Topic = "seasonality"
	TopicSavedJobs    Topic = "saved_jobs"
	TopicJourney      Topic = "journey"
	TopicSectors      Topic = "sectors"
	TopicNetwork      Topic = "network"
)

type pool map[Topic]map[Tier][]string

var french = pool{
	TopicTrendSummary: {TierAny: {
		"Mois le plus actif : {{.Best}} ({{.BestValue}} interactions). Mois le moins actif : {{.Worst}} ({{.WorstValue}} interactions).",
	}},
	TopicVolume: {
		TierNone:   {"Vous n'avez eu aucune activité sur toute la période."},
		TierLow:    {"Votre activité est globalement faible, mais régulière."},
		TierMedium: {"Votre activité est correcte, avec quelques pics intéressants."},
		TierHigh:   {"Très belle activité ! Vous avez eu un mois particulièrement dynamique."},
	},
	TopicRegularity: {
		TierVeryRegular:   {"Votre activité est très régulière. Vous interagissez de manière stable chaque mois."},
		TierRegular:       {"Votre activité est plutôt régulière, avec quelques variations normales."},
		TierIrregular:     {"Votre activité montre des variations importantes. Vous alternez entre périodes calmes et actives."},
		TierVeryIrregular: {"Votre activité est très irrégulière, avec de fortes fluctuations d'un mois à l'autre."},
	},
	TopicPeakMonth: {
		TierHigh: {
			"Wow, incroyable ! {{.Period}} a été votre mois le plus actif. Une superbe dynamique !",
			"Performance exceptionnelle en {{.Period}}. Vous étiez au top de votre engagement !",
			"Activité impressionnante en {{.Period}}. Vous avez vraiment brillé !",
		},
		TierMedium: {
			"Beau mois d'activité en {{.Period}}. Continuez sur cette lancée !",
			"Joli rythme en {{.Period}}. Vous êtes sur la bonne voie !",
			"Belle énergie en {{.Period}}. Encore un petit effort et vous atteindrez un nouveau sommet !",
		},
		TierLow: {
			"{{.Period}} a été votre mois le plus actif, mais votre rythme reste calme. Vous pouvez facilement augmenter votre présence.",
			"Une petite activité en {{.Period}}. Chaque interaction compte, vous êtes sur la bonne voie.",
			"{{.Period}} montre un début d'engagement. Rien ne presse, vous pouvez progresser à votre rythme.",
		},
	},
	TopicExtremes: {
		TierHigh:   {"Votre période la plus active se situe en {{.Peak}}, tandis que la période la plus calme apparaît en {{.Low}}. Votre activité montre une dynamique particulièrement soutenue."},
		TierMedium: {"Votre période la plus active se situe en {{.Peak}}, et la plus calme en {{.Low}}. Votre rythme est équilibré, avec des variations naturelles."},
		TierLow:    {"Votre période la plus active se situe en {{.Peak}}, et la plus calme en {{.Low}}. Votre activité reste modérée, mais elle évolue de manière régulière."},
	},
	TopicIntervals: {TierAny: {
		"En moyenne, {{.Mean}} s'écoulent entre deux interactions (médiane : {{.Median}}).",
	}},
	TopicTimeOfDay: {TierAny: {
		"C'est en tranche « {{.Band}} » que vous interagissez le plus ({{.Count}} interactions).",
	}},
	TopicHeatmap: {TierAny: {
		"Votre activité est la plus élevée le {{.Day}}, et elle atteint son maximum durant la tranche horaire « {{.Band}} ». Ces moments représentent vos périodes d'engagement les plus marquées.",
	}},
	TopicSeasonality: {TierAny: {
		"Toutes années confondues, {{.Month}} est le mois où vous êtes le plus actif ({{.Count}} interactions).",
	}},
	TopicSavedJobs: {TierAny: {
		"Votre activité de sauvegarde d'offres est particulièrement marquée en {{.Period}}. Vous semblez accorder une attention particulière aux opportunités proposées par {{.Company}}, et les postes de type « {{.Title}} » reviennent régulièrement dans vos sélections. Ces éléments dessinent une orientation claire dans votre recherche et confirment la cohérence de vos objectifs professionnels.",
	}},
	TopicJourney: {TierAny: {
		"Vous avez occupé {{.Count}} postes, pour une durée moyenne de {{.Average}} mois. Votre plus longue expérience : {{.Longest}}.",
	}},
	TopicSectors: {TierAny: {
		"Votre réseau montre une affinité particulière avec le secteur « {{.Sector}} ». C'est clairement un domaine qui retient davantage votre attention et reflète vos centres d'intérêt actuels.",
	}},
	TopicNetwork: {TierAny: {
		"Votre réseau a connu son élan le plus fort en {{.Period}}. Reprendre le rythme de cette période pourrait renforcer encore davantage votre dynamique professionnelle.",
	}},
}

var english = pool{
	TopicTrendSummary: {TierAny: {
		"Most active month: {{.Best}} ({{.BestValue}} interactions). Least active month: {{.Worst}} ({{.WorstValue}} interactions).",
	}},
	TopicVolume: {
		TierNone:   {"You had no activity over the whole period."},
		TierLow:    {"Your activity is low overall, but steady."},
		TierMedium: {"Your activity is decent, with a few interesting peaks."},
		TierHigh:   {"Great activity! You had a particularly dynamic month."},
	},
	TopicRegularity: {
		TierVeryRegular:   {"Your activity is very regular. You engage at a steady pace every month."},
		TierRegular:       {"Your activity is fairly regular, with some normal variation."},
		TierIrregular:     {"Your activity varies a lot. You alternate between quiet and busy periods."},
		TierVeryIrregular: {"Your activity is very irregular, with strong swings from one month to the next."},
	},
	TopicPeakMonth: {
		TierHigh: {
			"Wow, amazing! {{.Period}} was your most active month. Superb momentum!",
			"Outstanding performance in {{.Period}}. You were at the top of your engagement!",
			"Impressive activity in {{.Period}}. You really shone!",
		},
		TierMedium: {
			"A good month of activity in {{.Period}}. Keep it up!",
			"Nice pace in {{.Period}}. You are on the right track!",
			"Good energy in {{.Period}}. A little more effort and you will reach a new high!",
		},
		TierLow: {
			"{{.Period}} was your most active month, but your pace stays calm. You can easily grow your presence.",
			"A little activity in {{.Period}}. Every interaction counts, you are on the right track.",
			"{{.Period}} shows the start of your engagement. No rush, you can progress at your own pace.",
		},
	},
	TopicExtremes: {
		TierHigh:   {"Your most active period was {{.Peak}}, while the quietest was {{.Low}}. Your activity shows particularly sustained momentum."},
		TierMedium: {"Your most active period was {{.Peak}}, and the quietest {{.Low}}. Your pace is balanced, with natural variation."},
		TierLow:    {"Your most active period was {{.Peak}}, and the quietest {{.Low}}. Your activity stays moderate but evolves steadily."},
	},
	TopicIntervals: {TierAny: {
		"On average, {{.Mean}} pass between two interactions (median: {{.Median}}).",
	}},
	TopicTimeOfDay: {TierAny: {
		"You interact most in the {{.Band}} band ({{.Count}} interactions).",
	}},
	TopicHeatmap: {TierAny: {
		"Your activity is highest on {{.Day}}, peaking during the {{.Band}} band. These are your most engaged moments.",
	}},
	TopicSeasonality: {TierAny: {
		"Across all years, {{.Month}} is your most active month ({{.Count}} interactions).",
	}},
	TopicSavedJobs: {TierAny: {
		"Your job saving peaked in {{.Period}}. You pay particular attention to opportunities at {{.Company}}, and \"{{.Title}}\" roles keep coming back in your selections. Together these point to a clear direction in your search.",
	}},
	TopicJourney: {TierAny: {
		"You held {{.Count}} positions, lasting {{.Average}} months on average. Your longest experience: {{.Longest}}.",
	}},
	TopicSectors: {TierAny: {
		"Your network shows a particular affinity with the {{.Sector}} sector. It clearly draws your attention and reflects your current interests.",
	}},
	TopicNetwork: {TierAny: {
		"Your network grew fastest in {{.Period}}. Getting back to that pace could strengthen your professional momentum.",
	}},
}

var compiled = map[language.Tag]map[Topic]map[Tier][]*template.Template{
	language.French:  mustCompile("fr", french),
	language.English: mustCompile("en", english),
}

func mustCompile(lang string, p pool) map[Topic]map[Tier][]*template.Template {
	out := make(map[Topic]map[Tier][]*template.Template, len(p))
	for topic, tiers := range p {
		out[topic] = make(map[Tier][]*template.Template, len(tiers))
		for tier, texts := range tiers {
			for i, text := range texts {
				name := fmt.Sprintf("%s/%s/%s/%d", lang, topic, tier, i)
				t := template.Must(template.New(name).Option("missingkey=error").Parse(text))
				out[topic][tier] = append(out[topic][tier], t)
			}
		}
	}
	return out
}
