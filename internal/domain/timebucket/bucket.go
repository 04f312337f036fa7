// Package timebucket agrupa timestamps en cubetas de calendario: mes natural
// o semana ISO 8601. Toda truncación pasa primero por la zona horaria del
// negocio para que una OC cargada a las 23:30 en Buenos Aires no salte de mes
// por estar almacenada en UTC.
package timebucket

import (
	"fmt"
	"time"
)

// Month es una cubeta (año, mes) ya normalizada a la zona del negocio.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf trunca un timestamp al mes natural en la zona indicada.
func MonthOf(t time.Time, loc *time.Location) Month {
	local := t.In(loc)
	return Month{Year: local.Year(), Month: local.Month()}
}

// Start devuelve el primer día del mes a las 00:00 en la zona indicada.
func (m Month) Start(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Before orden cronológico entre cubetas mensuales.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// String formatea "YYYY-MM", útil como clave de serie.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Week es una cubeta de semana ISO 8601: año ISO y número de semana con
// semanas que arrancan el lunes. No es lo mismo que agrupar de a 7 días, ni
// que el año calendario: el 1 de enero puede pertenecer a la semana 52 del
// año anterior.
type Week struct {
	Year int
	Week int
}

// WeekOf asigna un timestamp a su semana ISO en la zona indicada.
func WeekOf(t time.Time, loc *time.Location) Week {
	year, week := t.In(loc).ISOWeek()
	return Week{Year: year, Week: week}
}

// Monday devuelve la fecha (00:00 UTC) del lunes que abre la semana, inversa
// de WeekOf para cualquier semana válida.
func (w Week) Monday() time.Time {
	// El 4 de enero cae siempre en la semana ISO 1 de su año.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -daysSinceMonday)
	return week1Monday.AddDate(0, 0, (w.Week-1)*7)
}

// Before orden cronológico entre semanas.
func (w Week) Before(o Week) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// String formatea "YYYY-WW".
func (w Week) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, w.Week)
}

// ParseWeek interpreta una clave "YYYY-WW" bajo la regla ISO. Las claves que
// no corresponden a una semana real (semana 0, semana 53 de un año de 52, o
// texto no numérico) devuelven error: el llamador las descarta y las cuenta,
// nunca las corre a otra semana.
func ParseWeek(s string) (Week, error) {
	if len(s) != 7 || s[4] != '-' || !allDigits(s[:4]) || !allDigits(s[5:]) {
		return Week{}, fmt.Errorf("clave de semana %q: se espera formato YYYY-WW", s)
	}
	year := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	week := int(s[5]-'0')*10 + int(s[6]-'0')
	if year < 1 {
		return Week{}, fmt.Errorf("clave de semana %q: año inválido", s)
	}
	if week < 1 || week > 53 {
		return Week{}, fmt.Errorf("clave de semana %q: semana %d fuera de rango", s, week)
	}
	w := Week{Year: year, Week: week}
	// Ida y vuelta: el lunes calculado tiene que volver a caer en (año, semana).
	// Esto rechaza la semana 53 en años ISO de 52 semanas.
	if got := WeekOf(w.Monday(), time.UTC); got != w {
		return Week{}, fmt.Errorf("clave de semana %q: el año %d no tiene semana %d", s, year, week)
	}
	return w, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
