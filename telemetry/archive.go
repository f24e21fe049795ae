package telemetry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Archive stores yearly statistics of one or more runs in SQLite.
type Archive struct {
	conn  *sqlx.DB
	runID uuid.UUID
}

// yearRow is the persisted subset of YearStats.
type yearRow struct {
	RunID          string  `db:"run_id"`
	Year           int     `db:"year"`
	Tick           int64   `db:"tick"`
	Population     int     `db:"population"`
	Men            int     `db:"men"`
	Women          int     `db:"women"`
	Boys           int     `db:"boys"`
	Girls          int     `db:"girls"`
	Paired         int     `db:"paired"`
	Births         int     `db:"births"`
	Deaths         int     `db:"deaths"`
	MaleDeaths     int     `db:"male_deaths"`
	Marriages      int     `db:"marriages"`
	AgeMean        float64 `db:"age_mean"`
	LifeExpectancy float64 `db:"life_expectancy"`
	AptitudeMean   float64 `db:"aptitude_mean"`
	FoodBalance    float64 `db:"food_balance"`
	FoodReserve    float64 `db:"food_reserve"`
	DeathModifier  float64 `db:"death_modifier"`
}

// OpenArchive opens or creates the archive at path and registers a new run.
func OpenArchive(path string, runID uuid.UUID, seed int64) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{conn: conn, runID: runID}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	_, err = conn.Exec("INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)",
		runID.String(), seed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return a, nil
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS years (
		run_id TEXT NOT NULL REFERENCES runs(id),
		year INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		population INTEGER NOT NULL,
		men INTEGER NOT NULL,
		women INTEGER NOT NULL,
		boys INTEGER NOT NULL,
		girls INTEGER NOT NULL,
		paired INTEGER NOT NULL,
		births INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		male_deaths INTEGER NOT NULL,
		marriages INTEGER NOT NULL,
		age_mean REAL NOT NULL,
		life_expectancy REAL NOT NULL,
		aptitude_mean REAL NOT NULL,
		food_balance REAL NOT NULL,
		food_reserve REAL NOT NULL,
		death_modifier REAL NOT NULL,
		PRIMARY KEY (run_id, year)
	);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// RunID returns the identifier rows are stored under.
func (a *Archive) RunID() uuid.UUID {
	return a.runID
}

// SaveYear stores one year of the current run.
func (a *Archive) SaveYear(s YearStats) error {
	row := yearRow{
		RunID:          a.runID.String(),
		Year:           s.Year,
		Tick:           s.Tick,
		Population:     s.Population,
		Men:            s.Men,
		Women:          s.Women,
		Boys:           s.Boys,
		Girls:          s.Girls,
		Paired:         s.Paired,
		Births:         s.Births,
		Deaths:         s.Deaths,
		MaleDeaths:     s.MaleDeaths,
		Marriages:      s.Marriages,
		AgeMean:        s.AgeMean,
		LifeExpectancy: s.LifeExpectancy,
		AptitudeMean:   s.AptitudeMean,
		FoodBalance:    s.FoodBalance,
		FoodReserve:    s.FoodReserve,
		DeathModifier:  s.DeathModifier,
	}
	_, err := a.conn.NamedExec(`INSERT OR REPLACE INTO years
		(run_id, year, tick, population, men, women, boys, girls, paired,
		 births, deaths, male_deaths, marriages, age_mean, life_expectancy, aptitude_mean,
		 food_balance, food_reserve, death_modifier)
		VALUES (:run_id, :year, :tick, :population, :men, :women, :boys, :girls, :paired,
		 :births, :deaths, :male_deaths, :marriages, :age_mean, :life_expectancy, :aptitude_mean,
		 :food_balance, :food_reserve, :death_modifier)`, row)
	if err != nil {
		return fmt.Errorf("insert year %d: %w", s.Year, err)
	}
	return nil
}

// Years returns the stored years of the current run in order.
func (a *Archive) Years() ([]YearStats, error) {
	var rows []yearRow
	err := a.conn.Select(&rows, "SELECT * FROM years WHERE run_id = ? ORDER BY year", a.runID.String())
	if err != nil {
		return nil, err
	}

	out := make([]YearStats, len(rows))
	for i, r := range rows {
		out[i] = YearStats{
			Year:           r.Year,
			Tick:           r.Tick,
			Population:     r.Population,
			Men:            r.Men,
			Women:          r.Women,
			Boys:           r.Boys,
			Girls:          r.Girls,
			Paired:         r.Paired,
			Births:         r.Births,
			Deaths:         r.Deaths,
			MaleDeaths:     r.MaleDeaths,
			Marriages:      r.Marriages,
			AgeMean:        r.AgeMean,
			LifeExpectancy: r.LifeExpectancy,
			AptitudeMean:   r.AptitudeMean,
			FoodBalance:    r.FoodBalance,
			FoodReserve:    r.FoodReserve,
			DeathModifier:  r.DeathModifier,
		}
	}
	return out, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}
