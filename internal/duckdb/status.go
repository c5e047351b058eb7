package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/ideocoverage/internal/ideogram"
)

// RegionStatus is one row of the region_status table.
type RegionStatus struct {
	Chrom    string
	Region   string
	Start    int64
	End      int64
	Status   string
	Overlaps int64
}

// RegionRows flattens the model into rows, chromosomes in canonical order.
func RegionRows(g *ideogram.Genome) []RegionStatus {
	var rows []RegionStatus
	for i := range g.Chromosomes {
		chr := &g.Chromosomes[i]
		for _, f := range chr.Features() {
			rows = append(rows, RegionStatus{
				Chrom:    chr.Name.String(),
				Region:   f.Kind.String(),
				Start:    f.Region.Start,
				End:      f.Region.End,
				Status:   f.Status.String(),
				Overlaps: int64(f.Overlaps),
			})
		}
	}
	return rows
}

// WriteRegionStatus replaces the contents of region_status with rows using
// the Appender API.
func (s *Store) WriteRegionStatus(rows []RegionStatus) error {
	if err := s.ClearRegionStatus(); err != nil {
		return fmt.Errorf("clear region status: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "region_status")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range rows {
		if err := appender.AppendRow(r.Chrom, r.Region, r.Start, r.End, r.Status, r.Overlaps); err != nil {
			return fmt.Errorf("append region status: %w", err)
		}
	}

	return appender.Flush()
}

// ClearRegionStatus removes all region status rows.
func (s *Store) ClearRegionStatus() error {
	_, err := s.db.Exec("DELETE FROM region_status")
	return err
}

// LookupRegions returns the stored rows of one chromosome ordered by start.
func (s *Store) LookupRegions(chrom string) ([]RegionStatus, error) {
	rows, err := s.db.Query(`SELECT chrom, region, start_pos, end_pos, status, overlaps
		FROM region_status
		WHERE chrom=?
		ORDER BY start_pos, region`, chrom)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var out []RegionStatus
	for rows.Next() {
		var r RegionStatus
		if err := rows.Scan(&r.Chrom, &r.Region, &r.Start, &r.End, &r.Status, &r.Overlaps); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return out, nil
}

// CountByStatus returns the number of stored regions per status.
func (s *Store) CountByStatus() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT status, count(*) FROM region_status GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count regions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
