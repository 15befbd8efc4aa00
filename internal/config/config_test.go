package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/deeparex/Food-monitoring-System/internal/config"
)

func TestConfig_Defaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.NearExpiryWindowHours, ShouldEqual, 24)
			So(cfg.SubscriberBuffer, ShouldEqual, 16)
			So(cfg.StoreBackend, ShouldEqual, config.StoreMemory)
			So(cfg.ShardCount, ShouldEqual, 8)
			So(cfg.RequiredCertifications, ShouldResemble,
				[]string{"FDA Approved", "FSSAI Certified", "ISO 22000"})
		})
	})
}

func TestConfig_EnvOverride(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("FOODMON_ADDR", ":9999")
		t.Setenv("FOODMON_LOG_LEVEL", "debug")
		t.Setenv("FOODMON_NEAR_EXPIRY_WINDOW_HOURS", "48")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.NearExpiryWindowHours, ShouldEqual, 48)
			})
		})
	})
}

func TestConfig_FileThenEnv(t *testing.T) {
	Convey("Given a YAML file and an env override of the same key", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		err := os.WriteFile(path, []byte("addr: \":7070\"\nlog_level: warn\n"), 0o600)
		So(err, ShouldBeNil)
		t.Setenv("FOODMON_CONFIG", path)
		t.Setenv("FOODMON_ADDR", ":6060")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env beats file, file beats defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.LogLevel, ShouldEqual, "warn")
			})
		})
	})
}

func TestConfig_Validation(t *testing.T) {
	Convey("Given invalid configuration", t, func() {
		Convey("When the store backend is unknown", func() {
			t.Setenv("FOODMON_STORE_BACKEND", "redis")
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid-config sentinel", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When postgres is selected without a DSN", func() {
			t.Setenv("FOODMON_STORE_BACKEND", "postgres")
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid-config sentinel", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When the near-expiry window is not positive", func() {
			t.Setenv("FOODMON_NEAR_EXPIRY_WINDOW_HOURS", "0")
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid-config sentinel", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When a config file is missing", func() {
			t.Setenv("FOODMON_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}
