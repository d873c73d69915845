package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFueraDeDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "backoffice-api", Out: &buf})

	l.Info().Str("path", "/clients").Msg("hola")
	l.Debug().Msg("no debe salir")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hola", line["message"])
	assert.Equal(t, "/clients", line["path"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "backoffice-api", line["service"])
}

func TestRequest_AgregaCamposDePeticion(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Out: &buf})

	l.Request("req-1", "abc").Warn().Msg("con cuenta")
	l.Request("req-2", "").Warn().Msg("anónima")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "abc", first["account_id"])
	assert.Equal(t, "req-2", second["request_id"])
	assert.NotContains(t, second, "account_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}
