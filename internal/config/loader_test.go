package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/radar/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultMinMinutes, convey.ShouldEqual, 500.0)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RADAR_ADDR", ":8080")
			_ = os.Setenv("RADAR_DATASET_PATH", "/data/wyscout.csv")
			_ = os.Setenv("RADAR_DEFAULT_MIN_MINUTES", "300")
			_ = os.Setenv("RADAR_COHORT_CACHE_SIZE", "4")
			_ = os.Setenv("RADAR_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
			_ = os.Setenv("RADAR_BUNDLES", "general,defensive")
			_ = os.Setenv("RADAR_DOCS_ASSET_DIR", "/srv/redoc")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/wyscout.csv")
				convey.So(cfg.DefaultMinMinutes, convey.ShouldEqual, 300.0)
				convey.So(cfg.CohortCacheSize, convey.ShouldEqual, 4)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
				convey.So(cfg.Bundles, convey.ShouldResemble, []string{"general", "defensive"})
				convey.So(cfg.DocsAssetDir, convey.ShouldEqual, "/srv/redoc")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
dataset_path: "jan25.csv"
default_min_minutes: 800
min_minutes_ceiling: 3000
log_format: json
position_aliases:
  LWB3: LB
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "jan25.csv")
				convey.So(cfg.DefaultMinMinutes, convey.ShouldEqual, 800.0)
				convey.So(cfg.MinMinutesCeiling, convey.ShouldEqual, 3000.0)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.PositionAliases["lwb3"]+cfg.PositionAliases["LWB3"], convey.ShouldEqual, "LB")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_min_minutes: 800
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			_ = os.Setenv("RADAR_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultMinMinutes, convey.ShouldEqual, 800.0)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RADAR_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("RADAR_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrEmptyAddr), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RADAR_COHORT_CACHE_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When the default threshold exceeds the ceiling", func() {
			_ = os.Setenv("RADAR_DEFAULT_MIN_MINUTES", "9000")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RADAR_CONFIG",
		"RADAR_ADDR",
		"RADAR_DATASET_PATH",
		"RADAR_DEFAULT_MIN_MINUTES",
		"RADAR_COHORT_CACHE_SIZE",
		"RADAR_CORS_ALLOWED_ORIGINS",
		"RADAR_BUNDLES",
		"RADAR_DOCS_ASSET_DIR",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "radar-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
