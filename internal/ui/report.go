package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/synastry"
	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// ReportAspects is the number of aspects listed in a compatibility report.
const ReportAspects = 10

var bandColors = map[synastry.Band]lipgloss.Color{
	synastry.BandExcellent:   colorSuccess,
	synastry.BandGood:        colorPrimary,
	synastry.BandModerate:    colorWarning,
	synastry.BandChallenging: colorDanger,
}

// NatalReport renders a chart as a styled multi-section report.
func NatalReport(c *natal.Chart) string {
	var b strings.Builder
	birth := c.Birth()

	title := "Natal chart"
	if birth.Name != "" {
		title += ": " + birth.Name
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	row(&b, "Born", birth.Local.Format("2006-01-02 15:04")+styleDim.Render(" ("+birth.UTC.Format("15:04")+" UTC)"))
	if birth.Place != "" {
		row(&b, "Place", birth.Place)
	}
	row(&b, "Coordinates", fmt.Sprintf("%.4f, %.4f", birth.Latitude, birth.Longitude))
	row(&b, "Timezone", birth.Timezone)

	section(&b, "The Big Three")
	big := c.BigThree()
	row(&b, "Sun", placement(big.Sun, true))
	row(&b, "Moon", placement(big.Moon, true))
	row(&b, "Rising", placement(big.Ascendant, false))

	section(&b, "Planetary positions")
	for _, p := range c.Planets() {
		line := placement(p, true)
		if p.Retrograde {
			line += " " + styleChallenging.Render(iconRetro)
		}
		row(&b, string(p.Body), line)
	}

	section(&b, "Elements & modalities")
	dist := c.Distribution()
	for _, e := range zodiac.Elements() {
		row(&b, string(e), countBar(dist.Element(e), dist.Total()))
	}
	for _, m := range zodiac.Modalities() {
		row(&b, string(m), countBar(dist.Modality(m), dist.Total()))
	}

	section(&b, "Dominants")
	dom := c.Dominants()
	row(&b, "Element", string(dom.Element))
	row(&b, "Modality", string(dom.Modality))
	row(&b, "Sign", dom.Sign.String())
	row(&b, "Planet", string(dom.Planet))

	if st := c.Stelliums(); len(st) > 0 {
		section(&b, "Stelliums")
		for _, s := range st {
			members := make([]string, len(s.Members))
			for i, m := range s.Members {
				members[i] = string(m)
			}
			row(&b, s.Location(), fmt.Sprintf("%d planets: %s", s.Count(), strings.Join(members, ", ")))
		}
	}

	section(&b, "Personality")
	arch := c.Archetype()
	row(&b, "MBTI", styleScore.Render(arch.MBTI))
	row(&b, "Enneagram", styleScore.Render(arch.EnneagramLabel()))
	return b.String()
}

// CompatibilityReport renders a comparison as a styled multi-section report.
func CompatibilityReport(r synastry.Result) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Compatibility: %s & %s", nameOr(r.NameA, "Chart A"), nameOr(r.NameB, "Chart B"))))
	b.WriteString("\n")

	band := lipgloss.NewStyle().Foreground(bandColors[r.Band]).Bold(true)
	row(&b, "Overall", styleScore.Render(fmt.Sprintf("%.1f/100", r.Overall))+" "+band.Render(string(r.Band))+styleDim.Render(" "+r.Band.Summary()))
	row(&b, "Harmony", fmt.Sprintf("%.1f", r.Harmony))

	section(&b, "Categories")
	for _, c := range synastry.Categories() {
		score := r.Categories.Get(c)
		b.WriteString(styleLabel.Width(22).Render(c.Title()))
		b.WriteString(styleValue.Render(fmt.Sprintf("%5.1f ", score)))
		b.WriteString(scoreBar(score))
		b.WriteString("\n")
	}

	section(&b, "Pairings")
	pairing(&b, "Element", string(r.Element.A)+" + "+string(r.Element.B), r.Element.Score, r.Element.Interpretation)
	pairing(&b, "Modality", string(r.Modality.A)+" + "+string(r.Modality.B), r.Modality.Score, r.Modality.Interpretation)
	pairing(&b, "MBTI", r.MBTI.A+" + "+r.MBTI.B, r.MBTI.Score, r.MBTI.Interpretation)
	pairing(&b, "Enneagram", r.Enneagram.A+" + "+r.Enneagram.B, r.Enneagram.Score, r.Enneagram.Interpretation)

	section(&b, "Key aspects")
	if len(r.Aspects) == 0 {
		b.WriteString(styleDim.Render("No aspects within orb"))
		b.WriteString("\n")
	}
	for i, a := range r.Aspects {
		if i == ReportAspects {
			b.WriteString(styleDim.Render(fmt.Sprintf("  … %d more", len(r.Aspects)-ReportAspects)))
			b.WriteString("\n")
			break
		}
		b.WriteString(aspectLine(a))
		b.WriteString("\n")
	}

	section(&b, "Strengths")
	insights(&b, r.Strengths, styleHarmonious)
	section(&b, "Challenges")
	insights(&b, r.Challenges, styleChallenging)

	section(&b, "Outlook")
	row(&b, "Best case", r.Predictions.BestCase.Text)
	row(&b, "Worst case", r.Predictions.WorstCase.Text)
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(styleSection.Render(title))
	b.WriteString("\n")
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label))
	b.WriteString(styleValue.Render(value))
	b.WriteString("\n")
}

func placement(p zodiac.Position, withHouse bool) string {
	s := fmt.Sprintf("%-11s %5.2f°", p.Sign, p.DegreeInSign)
	if withHouse {
		s += styleDim.Render("  " + humanize.Ordinal(p.House) + " house")
	}
	return s
}

func countBar(n, total int) string {
	bar := ""
	if total > 0 {
		bar = strings.Repeat(barFull, n*scoreBarWidth/(total*2))
	}
	return fmt.Sprintf("%2d %s", n, styleScore.Render(bar))
}

// scoreBar draws a 0–100 score as a fixed-width bar.
func scoreBar(score float64) string {
	filled := int(math.Round(score / 100 * scoreBarWidth))
	filled = max(0, min(scoreBarWidth, filled))
	return styleScore.Render(strings.Repeat(barFull, filled)) + styleDim.Render(strings.Repeat(barEmpty, scoreBarWidth-filled))
}

func pairing(b *strings.Builder, label, pair string, score int, text string) {
	row(b, label, fmt.Sprintf("%s %s", pair, styleScore.Render(fmt.Sprintf("%d/10", score))))
	b.WriteString(styleLabel.Render(""))
	b.WriteString(styleDim.Render(text))
	b.WriteString("\n")
}

func aspectLine(a synastry.Aspect) string {
	sign, style := "+", styleHarmonious
	if a.Polarity() == synastry.Challenging {
		sign, style = "-", styleChallenging
	}
	return fmt.Sprintf("  %-11s %s %-11s %s",
		a.From,
		style.Render(fmt.Sprintf("%-11s", strings.ToUpper(string(a.Type)))),
		a.To,
		styleDim.Render(fmt.Sprintf("[%s%.1f, orb %.1f°]", sign, a.Strength, a.Orb)))
}

func insights(b *strings.Builder, in []synastry.Insight, style lipgloss.Style) {
	for _, x := range in {
		b.WriteString("  " + style.Render(iconBullet) + " " + x.Text + "\n")
	}
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
