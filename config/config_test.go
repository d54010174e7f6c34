package config

import "testing"

func TestGetString(t *testing.T) {
	cfg := map[string]string{"SET": "value", "EMPTY": ""}

	if got := GetString(cfg, "SET", "fallback"); got != "value" {
		t.Errorf("GetString(SET) = %q", got)
	}
	// An empty value falls back just like an absent one, matching the
	// `process-env-or-default` behavior the deployment scripts rely on.
	if got := GetString(cfg, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString(EMPTY) = %q", got)
	}
	if got := GetString(cfg, "MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString(MISSING) = %q", got)
	}
	if got := GetString(nil, "ANY", "fallback"); got != "fallback" {
		t.Errorf("GetString(nil map) = %q", got)
	}
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"NUM": "42", "BAD": "forty-two"}

	if got := GetInt(cfg, "NUM", 7); got != 42 {
		t.Errorf("GetInt(NUM) = %d", got)
	}
	if got := GetInt(cfg, "BAD", 7); got != 7 {
		t.Errorf("GetInt(BAD) = %d", got)
	}
	if got := GetInt(cfg, "MISSING", 7); got != 7 {
		t.Errorf("GetInt(MISSING) = %d", got)
	}
}

func TestIsDevelopment(t *testing.T) {
	if !IsDevelopment(map[string]string{}) {
		t.Error("unset APP_ENV should mean development")
	}
	if IsDevelopment(map[string]string{KeyAppEnv: "production"}) {
		t.Error("production misread as development")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := map[string]string{
		KeyDBHost:     "db.internal",
		KeyDBUser:     "akuko",
		KeyDBPassword: "hunter2",
		KeyDBName:     "blog",
		KeyDBPort:     "5433",
		KeyDBSSLMode:  "require",
	}
	want := "host=db.internal user=akuko password=hunter2 dbname=blog port=5433 sslmode=require"
	if got := DatabaseDSN(cfg); got != want {
		t.Errorf("DatabaseDSN = %q, want %q", got, want)
	}

	// Defaults, in particular the akuko_blog database name.
	got := DatabaseDSN(map[string]string{})
	want = "host=localhost user=postgres password= dbname=akuko_blog port=5432 sslmode=disable"
	if got != want {
		t.Errorf("DatabaseDSN(defaults) = %q, want %q", got, want)
	}
}
