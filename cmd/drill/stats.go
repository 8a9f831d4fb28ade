package main

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/store"
)

//go:embed stats.tmpl
var statsTemplateText string

// badCardsThreshold marks cards answered correctly less often than this
// fraction as worth extra attention.
const badCardsThreshold = 0.75

type cardStat struct {
	Card        *store.Card
	Correct     int
	Incorrect   int
	FirstAnswer *time.Time
}

func (c *cardStat) Total() int {
	return c.Correct + c.Incorrect
}

// answerBucket is a run of cards sharing the same correct/incorrect answer
// counts, collapsed into one histogram bar of the given weight.
type answerBucket struct {
	Correct   int
	Incorrect int
	Weight    int
}

func (b *answerBucket) Total() int {
	return b.Correct + b.Incorrect
}

type statsReport struct {
	Deck                 *store.Deck
	GeneratedAt          time.Time
	ActiveCardCount      int
	InactiveCardCount    int
	CorrectAnswerCount   int
	IncorrectAnswerCount int
	MaxAnswerCount       int
	AnswerHistogram      []*answerBucket
	AnswerHistogramMax   int
	ActivityHistogram    []int
	ActivityHistogramMax int
	BadCards             []*cardStat
	BadCardsThreshold    float64
}

func (r *statsReport) TotalAnswerCount() int {
	return r.CorrectAnswerCount + r.IncorrectAnswerCount
}

func (r *statsReport) BadCardsThresholdPercent() string {
	return fmt.Sprintf("%.0f", r.BadCardsThreshold*100)
}

func buildStatsReport(ctx context.Context, s *store.Store, deck *store.Deck, now time.Time) (*statsReport, error) {
	cards, err := s.ListCards(ctx, &store.FindCard{DeckID: &deck.ID, OrderBy: store.CardOrderNum})
	if err != nil {
		return nil, err
	}

	report := &statsReport{
		Deck:              deck,
		GeneratedAt:       now,
		BadCardsThreshold: badCardsThreshold,
	}

	stats := make([]*cardStat, 0, len(cards))
	for _, card := range cards {
		answers, err := s.ListAnswers(ctx, &store.FindAnswer{CardID: &card.ID})
		if err != nil {
			return nil, err
		}

		stat := &cardStat{Card: card}
		for _, answer := range answers {
			if answer.IsCorrect {
				stat.Correct++
			} else {
				stat.Incorrect++
			}
		}
		if len(answers) > 0 {
			stat.FirstAnswer = &answers[0].Date
		}
		stats = append(stats, stat)

		if card.IsActive {
			report.ActiveCardCount++
		} else {
			report.InactiveCardCount++
		}
		report.CorrectAnswerCount += stat.Correct
		report.IncorrectAnswerCount += stat.Incorrect
		if stat.Total() > report.MaxAnswerCount {
			report.MaxAnswerCount = stat.Total()
		}
	}

	report.AnswerHistogram, report.AnswerHistogramMax = answerHistogram(stats)
	report.ActivityHistogram, report.ActivityHistogramMax = activityHistogram(stats, now)
	report.BadCards = badCards(stats)
	return report, nil
}

// answerHistogram collapses the active cards, best performers first, into
// runs of equal correct/incorrect counts.
func answerHistogram(stats []*cardStat) ([]*answerBucket, int) {
	active := make([]*cardStat, 0, len(stats))
	for _, stat := range stats {
		if stat.Card.IsActive {
			active = append(active, stat)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Incorrect != active[j].Incorrect {
			return active[i].Incorrect < active[j].Incorrect
		}
		return active[i].Correct > active[j].Correct
	})

	buckets := []*answerBucket{}
	maxValue := 0
	var last *answerBucket
	for _, stat := range active {
		if last != nil && last.Correct == stat.Correct && last.Incorrect == stat.Incorrect {
			last.Weight++
			continue
		}
		last = &answerBucket{Correct: stat.Correct, Incorrect: stat.Incorrect, Weight: 1}
		buckets = append(buckets, last)
		if last.Total() > maxValue {
			maxValue = last.Total()
		}
	}
	return buckets, maxValue
}

// activityHistogram counts, for each week of the past year, how many cards
// had been answered at least once by then.
func activityHistogram(stats []*cardStat, now time.Time) ([]int, int) {
	histogram := []int{}
	maxValue := 1
	for day := 358; day >= 1; day -= 7 {
		cutoff := now.AddDate(0, 0, -day)
		count := 0
		for _, stat := range stats {
			if stat.FirstAnswer != nil && stat.FirstAnswer.Before(cutoff) {
				count++
			}
		}
		histogram = append(histogram, count)
		if count > maxValue {
			maxValue = count
		}
	}
	return histogram, maxValue
}

// badCards returns the cards answered correctly less often than the
// threshold, worst ratio first.
func badCards(stats []*cardStat) []*cardStat {
	bad := make([]*cardStat, 0)
	for _, stat := range stats {
		if stat.Total() == 0 {
			continue
		}
		if float64(stat.Correct)/float64(stat.Total()) < badCardsThreshold {
			bad = append(bad, stat)
		}
	}
	sort.SliceStable(bad, func(i, j int) bool {
		ri := float64(bad[i].Correct) / float64(bad[i].Total())
		rj := float64(bad[j].Correct) / float64(bad[j].Total())
		return ri < rj
	})
	return bad
}

func percent(count, max int) string {
	if max == 0 {
		return "100.00"
	}
	return fmt.Sprintf("%.02f", float64(count)*100.0/float64(max))
}

func writeStatsReport(report *statsReport, out io.Writer) error {
	tmpl, err := template.New("stats").Funcs(template.FuncMap{
		"percent": percent,
	}).Parse(statsTemplateText)
	if err != nil {
		return errors.Wrap(err, "failed to parse stats template")
	}
	return errors.Wrap(tmpl.Execute(out, report), "failed to render stats report")
}

var statsCmd = &cobra.Command{
	Use:   "stats [deck] [output]",
	Short: "produce an HTML report about the chosen deck",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			report, err := buildStatsReport(ctx, s, deck, time.Now())
			if err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			if len(args) > 1 {
				handle, err := os.Create(args[1])
				if err != nil {
					return errors.Wrapf(err, "failed to create %s", args[1])
				}
				defer handle.Close()
				out = handle
			}
			return writeStatsReport(report, out)
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
