package config_test

import (
	"testing"

	"github.com/okian/meld/internal/config"
	"github.com/okian/meld/internal/domain/similarity"
	"github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("Then the similarity weights match the engine defaults", func() {
			convey.So(cfg.SimilarityWeights(), convey.ShouldResemble, similarity.DefaultWeights())
		})

		convey.Convey("Then the defaults pass validation when loaded", func() {
			convey.So(cfg.SimilarityWeights().Total(), convey.ShouldAlmostEqual, 1.0, 1e-9)
			convey.So(cfg.Addr, convey.ShouldNotBeEmpty)
			convey.So(cfg.TopK, convey.ShouldBeGreaterThan, 0)
		})
	})
}
