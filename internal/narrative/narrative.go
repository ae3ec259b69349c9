// Package narrative turns numeric results into short qualitative messages.
//
// A Ladder maps a magnitude to a Tier; a Classifier then picks one message
// template from the pool registered for a topic and tier and renders it
// with pre-formatted facts. Random choice goes through a Chooser so callers
// can seed it or replace it in tests.
package narrative

import (
	"bytes"
	"fmt"
	"math"
	"math/rand/v2"
	"text/template"

	"golang.org/x/text/language"

	"github.com/rewired-gh/linkedlens/internal/calfmt"
)

// Tier is a qualitative level.
type Tier string

const (
	TierAny           Tier = "any"
	TierNone          Tier = "none"
	TierLow           Tier = "low"
	TierMedium        Tier = "medium"
	TierHigh          Tier = "high"
	TierVeryRegular   Tier = "very_regular"
	TierRegular       Tier = "regular"
	TierIrregular     Tier = "irregular"
	TierVeryIrregular Tier = "very_irregular"
)

// Step is one rung of a ladder: values strictly below Below map to Tier.
type Step struct {
	Below float64
	Tier  Tier
}

// Ladder maps a magnitude to a tier. Steps must be ascending; values at or
// above the last step map to Top.
type Ladder struct {
	Steps []Step
	Top   Tier
}

// Classify returns the tier of v.
func (l Ladder) Classify(v float64) Tier {
	for _, s := range l.Steps {
		if v < s.Below {
			return s.Tier
		}
	}
	return l.Top
}

var (
	// PeakLadder grades the busiest month's interaction count.
	PeakLadder = Ladder{
		Steps: []Step{{Below: 15, Tier: TierLow}, {Below: 40, Tier: TierMedium}},
		Top:   TierHigh,
	}

	// RegularityLadder grades the mean absolute month-over-month variation.
	RegularityLadder = Ladder{
		Steps: []Step{
			{Below: 5, Tier: TierVeryRegular},
			{Below: 15, Tier: TierRegular},
			{Below: 30, Tier: TierIrregular},
		},
		Top: TierVeryIrregular,
	}

	// VolumeLadder grades the busiest month's count on the trend page.
	// Counts are integers, so anything below 1 means no activity at all.
	VolumeLadder = Ladder{
		Steps: []Step{
			{Below: 1, Tier: TierNone},
			{Below: 10, Tier: TierLow},
			{Below: 30, Tier: TierMedium},
		},
		Top: TierHigh,
	}
)

// MeanAbsVariation returns the mean absolute difference between consecutive
// values. ok is false with fewer than two values.
func MeanAbsVariation(series []int) (float64, bool) {
	if len(series) < 2 {
		return 0, false
	}
	var sum float64
	for i := 1; i < len(series); i++ {
		sum += math.Abs(float64(series[i] - series[i-1]))
	}
	return sum / float64(len(series)-1), true
}

// Chooser picks an index in [0, n).
type Chooser interface {
	IntN(n int) int
}

// NewChooser returns a pseudo-random chooser. A zero seed draws a random one.
func NewChooser(seed uint64) Chooser {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Facts are the values a template can reference, e.g. {{.Period}}.
// Callers format dates and numbers before passing them in.
type Facts map[string]string

// Classifier renders messages in one language.
type Classifier struct {
	lang    language.Tag
	chooser Chooser
	pools   map[Topic]map[Tier][]*template.Template
}

// New builds a classifier for the formatter's language.
func New(f calfmt.Formatter, chooser Chooser) *Classifier {
	lang := f.Language()
	pools, ok := compiled[lang]
	if !ok {
		pools = compiled[language.English]
	}
	if chooser == nil {
		chooser = NewChooser(0)
	}
	return &Classifier{lang: lang, chooser: chooser, pools: pools}
}

// Pool returns the rendered candidates of topic and tier, in registration order.
func (c *Classifier) Pool(topic Topic, tier Tier, facts Facts) ([]string, error) {
	tmpls, err := c.templates(topic, tier)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tmpls))
	for _, t := range tmpls {
		s, err := render(t, facts)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Message picks one template of topic and tier uniformly and renders it.
func (c *Classifier) Message(topic Topic, tier Tier, facts Facts) (string, error) {
	tmpls, err := c.templates(topic, tier)
	if err != nil {
		return "", err
	}
	return render(tmpls[c.chooser.IntN(len(tmpls))], facts)
}

func (c *Classifier) templates(topic Topic, tier Tier) ([]*template.Template, error) {
	tiers, ok := c.pools[topic]
	if !ok {
		return nil, fmt.Errorf("no messages for topic %q", topic)
	}
	tmpls := tiers[tier]
	if len(tmpls) == 0 {
		return nil, fmt.Errorf("no messages for topic %q at tier %q", topic, tier)
	}
	return tmpls, nil
}

func render(t *template.Template, facts Facts) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, facts); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
