package meeus

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/zodiac"
)

const secPerHour = 3600.0

// vsopBodies тела, для которых нужна полная теория VSOP87
var vsopBodies = map[domain.Body]int{
	domain.BodyMercury: pp.Mercury,
	domain.BodyVenus:   pp.Venus,
	domain.BodyMars:    pp.Mars,
	domain.BodyJupiter: pp.Jupiter,
	domain.BodySaturn:  pp.Saturn,
}

// Provider локальный бэкенд эфемерид: теория VSOP87 для Солнца и планет,
// ряды ELP-2000/82 для Луны. Данные планет загружаются один раз при старте
type Provider struct {
	cfg     Config
	log     *slog.Logger
	earth   *pp.V87Planet
	planets map[domain.Body]*pp.V87Planet
}

// New создаёт бэкенд эфемерид и загружает данные VSOP87 из каталога
func New(cfg Config, log *slog.Logger) (*Provider, error) {
	earth, err := pp.LoadPlanetPath(pp.Earth, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load VSOP87 data for earth: %w", err)
	}

	planets := make(map[domain.Body]*pp.V87Planet, len(vsopBodies))
	for body, ibody := range vsopBodies {
		planet, err := pp.LoadPlanetPath(ibody, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load VSOP87 data for %s: %w", body, err)
		}
		planets[body] = planet
	}

	log.Info("ephemeris backend initialized",
		"data_dir", cfg.DataDir,
		"planets_loaded", len(planets)+1,
	)

	return &Provider{
		cfg:     cfg,
		log:     log,
		earth:   earth,
		planets: planets,
	}, nil
}

// BodyLongitude возвращает видимую геоцентрическую эклиптическую долготу тела
// в градусах [0, 360) на момент UTC
func (p *Provider) BodyLongitude(instant time.Time, body domain.Body) (float64, error) {
	jde := p.jde(instant)

	switch body {
	case domain.BodySun:
		lon, _, _ := solar.ApparentVSOP87(p.earth, jde)
		return zodiac.Normalize(lon.Deg()), nil
	case domain.BodyMoon:
		return zodiac.Normalize(p.moonLongitude(jde)), nil
	default:
		planet, ok := p.planets[body]
		if !ok {
			return 0, fmt.Errorf("unsupported body %q", body)
		}
		return zodiac.Normalize(p.planetLongitude(planet, jde)), nil
	}
}

// SiderealTime возвращает видимое гринвичское звёздное время в часах [0, 24)
func (p *Provider) SiderealTime(instant time.Time) float64 {
	st := sidereal.Apparent(julian.TimeToJD(instant.UTC()))
	return math.Mod(st.Sec()/secPerHour, 24)
}

// TrueObliquity возвращает истинное наклонение эклиптики в градусах
func (p *Provider) TrueObliquity(instant time.Time) float64 {
	return p.trueObliquity(p.jde(instant)).Deg()
}

// moonLongitude видимая долгота Луны. Ряд даёт долготу от среднего
// равноденствия даты, видимая получается добавлением нутации по долготе
func (p *Provider) moonLongitude(jde float64) float64 {
	lon, _, _ := moonposition.Position(jde)
	dPsi, _ := nutation.Nutation(jde)
	return lon.Deg() + dPsi.Deg()
}

// planetLongitude видимые экваториальные координаты планеты (с учётом
// светового времени, аберрации и нутации) переводятся в эклиптические
// через истинное наклонение эклиптики
func (p *Provider) planetLongitude(planet *pp.V87Planet, jde float64) float64 {
	ra, dec := elliptic.Position(planet, p.earth, jde)
	obl := coord.NewObliquity(p.trueObliquity(jde))
	ecl := new(coord.Ecliptic).EqToEcl(&coord.Equatorial{RA: ra, Dec: dec}, obl)
	return ecl.Lon.Deg()
}

// trueObliquity истинное наклонение: среднее по IAU 1980 плюс нутация по наклонению
func (p *Provider) trueObliquity(jde float64) unit.Angle {
	_, dEps := nutation.Nutation(jde)
	return nutation.MeanObliquity(jde) + dEps
}

// jde юлианская эфемеридная дата: всемирное время плюс поправка ΔT
func (p *Provider) jde(instant time.Time) float64 {
	ut := instant.UTC()
	return julian.TimeToJD(ut) + deltaT(decimalYear(ut))/86400
}
