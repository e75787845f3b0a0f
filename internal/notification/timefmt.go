package notification

import (
	"fmt"
	"time"
	_ "time/tzdata" // America/Bogota must resolve on minimal images
)

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// Bogota is the zone notification timestamps are rendered in.
var Bogota = loadBogota()

func loadBogota() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}

// clock renders the es-CO medium time, e.g. "3:04:05 p. m.".
func clock(t time.Time) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	meridiem := "a. m."
	if t.Hour() >= 12 {
		meridiem = "p. m."
	}
	return fmt.Sprintf("%d:%02d:%02d %s", h, t.Minute(), t.Second(), meridiem)
}

// FormatTimestamp renders t in Bogota time using the es-CO full date and
// medium time styles: "lunes, 13 de octubre de 2025, 3:04:05 p. m.".
func FormatTimestamp(t time.Time) string {
	t = t.In(Bogota)
	return fmt.Sprintf("%s, %d de %s de %d, %s",
		weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year(), clock(t))
}

// FormatShort renders the default es-CO date-time: "13/10/2025, 3:04:05 p. m.".
func FormatShort(t time.Time) string {
	t = t.In(Bogota)
	return fmt.Sprintf("%d/%d/%d, %s", t.Day(), int(t.Month()), t.Year(), clock(t))
}
