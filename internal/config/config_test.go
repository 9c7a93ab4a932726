package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_LIMIT", "")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "")

	cfg := Load()

	if cfg.Tuning.Dataset.Limit != 10000 {
		t.Errorf("dataset limit = %d; want 10000", cfg.Tuning.Dataset.Limit)
	}
	if cfg.Tuning.Server.ReadTimeoutSeconds != 30 {
		t.Errorf("read timeout = %d; want 30", cfg.Tuning.Server.ReadTimeoutSeconds)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("max open conns = %d; want 25", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("max idle conns = %d; want 5", cfg.Database.MaxIdleConns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATASET_LIMIT", "250")
	t.Setenv("DATABASE_URL", "postgres://localhost/faces")

	cfg := Load()

	if cfg.Tuning.Dataset.Limit != 250 {
		t.Errorf("dataset limit = %d; want 250", cfg.Tuning.Dataset.Limit)
	}
	if cfg.Database.URL != "postgres://localhost/faces" {
		t.Errorf("database url = %q; want the env value", cfg.Database.URL)
	}
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"not a number", "banana", 7},
		{"negative", "-3", 7},
		{"zero", "0", 7},
		{"valid", "42", 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("FACE_INDEX_TEST_INT", tc.value)
			if got := envInt("FACE_INDEX_TEST_INT", 7); got != tc.want {
				t.Errorf("envInt = %d; want %d", got, tc.want)
			}
		})
	}
}
