package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/talkdata/erd-backend/pkg/config"
)

func newFakeConfig() config.Config {
	return config.Config{
		Server: config.Server{
			Address: "127.0.0.1",
			Port:    "8080",
		},
		Catalog: config.Catalog{
			APIURL: "http://localhost:9000/api",
			Token:  "fake_token",
		},
		Layout: config.Layout{
			Direction: "LR",
			NodeSep:   50,
			RankSep:   120,
		},
		LogLevel: "info",
		Debug:    false,
	}
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name      string
		config    string
		path      string
		envPrefix string
		loader    config.Loader
		binder    config.Binder
		envs      map[string]string
		expect    config.Config
		expectErr bool
	}{
		{
			name:      "Standard config",
			config:    "config",
			path:      "testdata",
			envPrefix: "talkdata",
			loader:    config.NewFileSystemLoader(),
			expect:    newFakeConfig(),
		},
		{
			name:      "Missing config file",
			config:    "no-such-config",
			path:      "testdata",
			envPrefix: "talkdata",
			loader:    config.NewFileSystemLoader(),
			expectErr: true,
		},
		{
			name:      "Standard config with env prefix overrides",
			config:    "config",
			path:      "testdata",
			envPrefix: "talkdata",
			loader:    config.NewFileSystemLoader(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Address = "example.com"

				return cfg
			}(),
			envs: map[string]string{
				"TALKDATA_SERVER_ADDRESS": "example.com",
			},
		},
		{
			name:      "Standard config with env overrides and binder",
			config:    "config",
			path:      "testdata",
			envPrefix: "talkdata",
			loader:    config.NewFileSystemLoader(),
			binder: config.NewEnvBinder(map[string]string{
				"SOME_RANDOM_CATALOG_TOKEN": "catalog.token",
			}),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Catalog.Token = "bound_token"

				return cfg
			}(),
			envs: map[string]string{
				"SOME_RANDOM_CATALOG_TOKEN": "bound_token",
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envs {
				t.Setenv(k, v)
			}

			cfg, err := tc.loader.Load(tc.config, tc.path, tc.envPrefix, tc.binder)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, cfg); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(cfg *config.Config)
		expectErr bool
	}{
		{
			name:   "valid config",
			mutate: func(cfg *config.Config) {},
		},
		{
			name: "layout section is optional",
			mutate: func(cfg *config.Config) {
				cfg.Layout = config.Layout{}
			},
		},
		{
			name: "missing catalog url",
			mutate: func(cfg *config.Config) {
				cfg.Catalog.APIURL = ""
			},
			expectErr: true,
		},
		{
			name: "invalid layout direction",
			mutate: func(cfg *config.Config) {
				cfg.Layout.Direction = "diagonal"
			},
			expectErr: true,
		},
		{
			name: "invalid server port",
			mutate: func(cfg *config.Config) {
				cfg.Server.Port = "not-a-port"
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			cfg := newFakeConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}
		})
	}
}

func getWorkingDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Errorf("get working dir: %v", err)
	}

	return wd
}

func TestProcessConfigPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		path      string
		expect    config.FileParts
		expectErr bool
	}{
		{
			name: "Valid config path",
			path: "testdata/config.yaml",
			expect: config.FileParts{
				FileName: "config",
				Path:     filepath.Join(getWorkingDir(t), "testdata"),
			},
		},
		{
			name:      "Invalid extension",
			path:      "testdata/config.json",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ProcessConfigPath(tc.path)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
