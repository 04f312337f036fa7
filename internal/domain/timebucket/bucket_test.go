package timebucket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarco-data/compras-monitor/internal/domain/timebucket"
)

func buenosAires(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	return loc
}

// TestMonthOf_ZonaHoraria: un alta a las 02:30 UTC del 1 de abril sigue siendo
// 31 de marzo en Buenos Aires (UTC-3) y debe caer en la cubeta de marzo.
func TestMonthOf_ZonaHoraria(t *testing.T) {
	loc := buenosAires(t)
	ts := time.Date(2025, 4, 1, 2, 30, 0, 0, time.UTC)

	m := timebucket.MonthOf(ts, loc)

	assert.Equal(t, timebucket.Month{Year: 2025, Month: time.March}, m)
	assert.Equal(t, "2025-03", m.String())
}

func TestMonth_Start(t *testing.T) {
	loc := buenosAires(t)
	m := timebucket.Month{Year: 2025, Month: time.March}

	start := m.Start(loc)

	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, loc, start.Location())
}

// TestWeekOf_ReglaISO: el 1 de enero de 2027 (viernes) pertenece a la semana
// 53 del año ISO 2026, no a la semana 1 de 2027.
func TestWeekOf_ReglaISO(t *testing.T) {
	w := timebucket.WeekOf(time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, timebucket.Week{Year: 2026, Week: 53}, w)
}

// TestWeek_IdaYVuelta: para semanas válidas, WeekOf(Monday()) devuelve la
// misma semana. Recorre varios años, incluidos los de 53 semanas (2020, 2026).
func TestWeek_IdaYVuelta(t *testing.T) {
	for year := 2019; year <= 2027; year++ {
		for week := 1; week <= 53; week++ {
			w := timebucket.Week{Year: year, Week: week}
			monday := w.Monday()
			if got := timebucket.WeekOf(monday, time.UTC); got != w {
				// Semana 53 inexistente en años de 52: no es parte de la
				// propiedad, la valida TestParseWeek_SemanaInexistente.
				require.Equal(t, 53, week,
					"solo la semana 53 puede no existir (año %d)", year)
				continue
			}
			assert.Equal(t, time.Monday, monday.Weekday(),
				"el inicio de %s debe ser lunes", w)
		}
	}
}

func TestParseWeek_Valida(t *testing.T) {
	w, err := timebucket.ParseWeek("2025-03")
	require.NoError(t, err)
	assert.Equal(t, timebucket.Week{Year: 2025, Week: 3}, w)
	assert.Equal(t, "2025-03", w.String())
}

// TestParseWeek_SemanaInexistente: 2025 tiene 52 semanas ISO; "2025-53" no se
// corre a la semana 1 ni a la actual, se rechaza.
func TestParseWeek_SemanaInexistente(t *testing.T) {
	_, err := timebucket.ParseWeek("2025-53")
	assert.Error(t, err)

	// 2020 sí tiene semana 53.
	w, err := timebucket.ParseWeek("2020-53")
	require.NoError(t, err)
	assert.Equal(t, timebucket.Week{Year: 2020, Week: 53}, w)
}

func TestParseWeek_Malformada(t *testing.T) {
	for _, s := range []string{"", "2025", "2025-W3", "25-03", "2025-00", "2025-54", "sin-dato", "2025-3x"} {
		_, err := timebucket.ParseWeek(s)
		assert.Error(t, err, "clave %q debe rechazarse", s)
	}
}
