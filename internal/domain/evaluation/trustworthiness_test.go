package evaluation_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/deeparex/Food-monitoring-System/internal/domain/evaluation"
	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

func expiryAt(t time.Time) *time.Time { return &t }

func TestTrustworthinessEvaluator_MissingExpiry(t *testing.T) {
	Convey("Given a record without a freshness expiry date", t, func() {
		rec := model.FoodRecord{TraceID: "trace-1"}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, time.Now())

			Convey("Then the check fails with the missing-expiry sentinel", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, evaluation.ErrMissingExpiryDate)
				So(alerts, ShouldBeNil)
			})
		})
	})
}

func TestTrustworthinessEvaluator_Expired(t *testing.T) {
	Convey("Given a record whose expiry date has passed", t, func() {
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		rec := model.FoodRecord{
			TraceID:             "trace-2",
			FreshnessExpiryDate: expiryAt(now.Add(-2 * time.Hour)),
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then a single expired alert is emitted", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertExpired, Message: "freshness expiry date has passed"},
				})
			})
		})
	})
}

func TestTrustworthinessEvaluator_NearExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	Convey("Given a record 5h30m from expiry", t, func() {
		rec := model.FoodRecord{
			TraceID:             "trace-3",
			FreshnessExpiryDate: expiryAt(now.Add(5*time.Hour + 30*time.Minute)),
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then the hour count is the floor of the difference", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertNearExpiry, Message: "expires in 5 hours"},
				})
			})
		})
	})

	Convey("Given a record exactly 24h from expiry", t, func() {
		rec := model.FoodRecord{
			TraceID:             "trace-4",
			FreshnessExpiryDate: expiryAt(now.Add(24 * time.Hour)),
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then the window boundary is exclusive and no alert fires", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a record just inside the window", t, func() {
		rec := model.FoodRecord{
			TraceID:             "trace-5",
			FreshnessExpiryDate: expiryAt(now.Add(23*time.Hour + 59*time.Minute)),
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then a near-expiry alert reports 23 hours", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertNearExpiry, Message: "expires in 23 hours"},
				})
			})
		})
	})

	Convey("Given a custom near-expiry window of 48 hours", t, func() {
		rec := model.FoodRecord{
			TraceID:             "trace-6",
			FreshnessExpiryDate: expiryAt(now.Add(30 * time.Hour)),
		}
		e := evaluation.NewTrustworthinessEvaluator(
			evaluation.WithNearExpiryWindow(48 * time.Hour),
		)

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then the wider window flags the record", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertNearExpiry, Message: "expires in 30 hours"},
				})
			})
		})
	})
}

func TestTrustworthinessEvaluator_ContaminationOrder(t *testing.T) {
	Convey("Given a near-expiry record that also carries a contamination risk", t, func() {
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		rec := model.FoodRecord{
			TraceID:             "trace-7",
			FreshnessExpiryDate: expiryAt(now.Add(5 * time.Hour)),
			ContaminationRisk:   true,
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then the expiry alert precedes the contamination alert", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertNearExpiry, Message: "expires in 5 hours"},
					{Kind: model.AlertContaminationRisk, Message: "contamination risk flagged"},
				})
			})
		})
	})

	Convey("Given a fresh record with a contamination risk only", t, func() {
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		rec := model.FoodRecord{
			TraceID:             "trace-8",
			FreshnessExpiryDate: expiryAt(now.Add(72 * time.Hour)),
			ContaminationRisk:   true,
		}
		e := evaluation.NewTrustworthinessEvaluator()

		Convey("When evaluating trustworthiness", func() {
			alerts, err := e.Evaluate(rec, now)

			Convey("Then only the contamination alert is emitted", func() {
				So(err, ShouldBeNil)
				So(alerts, ShouldResemble, []model.Alert{
					{Kind: model.AlertContaminationRisk, Message: "contamination risk flagged"},
				})
			})
		})
	})
}

func TestTrustworthinessEvaluator_Run(t *testing.T) {
	Convey("Given the trustworthiness evaluator behind the family interface", t, func() {
		var e evaluation.Evaluator = evaluation.NewTrustworthinessEvaluator()

		Convey("When running it on a record without an expiry date", func() {
			out, err := e.Run(model.FoodRecord{}, time.Now())

			Convey("Then the validation gap surfaces as an error", func() {
				So(err, ShouldWrap, evaluation.ErrMissingExpiryDate)
				So(out, ShouldResemble, evaluation.Outcome{})
			})
		})
	})
}
