package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/tally/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestScoreRecord_Validate(t *testing.T) {
	convey.Convey("Given the known subject set", t, func() {
		subjects := model.KnownSubjects()

		convey.Convey("When the record is well formed", func() {
			r := model.ScoreRecord{Name: "Hasan", Subject: model.SubjectJenkins, Number: 45}

			convey.Convey("Then it validates", func() {
				convey.So(r.Validate(subjects), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the score is zero", func() {
			r := model.ScoreRecord{Name: "Hasan", Subject: model.SubjectAWS, Number: 0}

			convey.Convey("Then it validates", func() {
				convey.So(r.Validate(subjects), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the name is blank", func() {
			err := model.ScoreRecord{Name: "  ", Subject: model.SubjectAWS, Number: 1}.Validate(subjects)

			convey.Convey("Then it reports an empty name", func() {
				convey.So(errors.Is(err, model.ErrEmptyName), convey.ShouldBeTrue)
				convey.So(errors.Is(err, model.ErrInvalidRecord), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the subject is empty", func() {
			err := model.ScoreRecord{Name: "Habib", Number: 1}.Validate(subjects)

			convey.Convey("Then it reports an empty subject", func() {
				convey.So(errors.Is(err, model.ErrEmptySubject), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the score is negative", func() {
			err := model.ScoreRecord{Name: "Habib", Subject: model.SubjectLinux, Number: -3}.Validate(subjects)

			convey.Convey("Then it reports a negative score", func() {
				convey.So(errors.Is(err, model.ErrNegativeScore), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "-3")
			})
		})

		convey.Convey("When the subject is outside the set", func() {
			r := model.ScoreRecord{Name: "Ayesha", Subject: "Terraform", Number: 70}

			convey.Convey("Then it reports an unknown subject", func() {
				convey.So(errors.Is(r.Validate(subjects), model.ErrUnknownSubject), convey.ShouldBeTrue)
			})

			convey.Convey("And an empty subject set accepts it", func() {
				convey.So(r.Validate(nil), convey.ShouldBeNil)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given a list with one bad record", t, func() {
		records := []model.ScoreRecord{
			{Name: "Hasan", Subject: model.SubjectJenkins, Number: 45},
			{Name: "Habib", Subject: model.SubjectJenkins, Number: 56},
			{Name: "", Subject: model.SubjectAWS, Number: 97},
		}

		convey.Convey("When validating the list", func() {
			err := model.Validate(records, model.KnownSubjects())

			convey.Convey("Then it points at the failing index", func() {
				var recErr *model.RecordError
				convey.So(errors.As(err, &recErr), convey.ShouldBeTrue)
				convey.So(recErr.Index, convey.ShouldEqual, 2)
				convey.So(recErr.Field, convey.ShouldEqual, "name")
				convey.So(recErr.Reason(), convey.ShouldEqual, "empty_name")
				convey.So(err.Error(), convey.ShouldContainSubstring, "#2")
			})
		})

		convey.Convey("When the list is empty", func() {
			convey.Convey("Then it validates", func() {
				convey.So(model.Validate(nil, model.KnownSubjects()), convey.ShouldBeNil)
			})
		})
	})
}

func TestRecordError_Reason(t *testing.T) {
	convey.Convey("Given record errors of each kind", t, func() {
		cases := map[error]string{
			model.ErrEmptyName:       "empty_name",
			model.ErrEmptySubject:    "empty_subject",
			model.ErrUnknownSubject:  "unknown_subject",
			model.ErrNegativeScore:   "negative_score",
			model.ErrMissingScore:    "missing_score",
			model.ErrNonIntegerScore: "non_integer_score",
			errors.New("other"):      "other",
		}

		convey.Convey("Then each maps to its metric label", func() {
			for kind, want := range cases {
				e := &model.RecordError{Index: 0, Field: "x", Err: kind}
				convey.So(e.Reason(), convey.ShouldEqual, want)
			}
		})
	})
}

func TestRankedTotal_JSON(t *testing.T) {
	convey.Convey("Given a ranked total", t, func() {
		rt := model.RankedTotal{Rank: 1, Name: "Hasan", Total: 142}

		convey.Convey("When encoding it", func() {
			b, err := json.Marshal(rt)

			convey.Convey("Then it uses the documented field names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, `{"rank":1,"name":"Hasan","total":142}`)
			})
		})
	})
}
