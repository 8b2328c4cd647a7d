package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/robshop/stock-engine/internal/domain/entity"
)

// scanStockRecord scans the shared stock column set (see catalogColumns)
// into a record with the given origin.
func scanStockRecord(row pgx.Row, origin entity.Origin) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var category string
	err := row.Scan(
		&rec.Location, &category, &rec.Brand, &rec.ProductName, &rec.Variant,
		&rec.Serial, &rec.MotorSerial, &rec.SystemQty, &rec.PhysicalQty,
		&rec.UnitPrice, &rec.Note,
	)
	if err != nil {
		return nil, err
	}
	rec.Category = entity.Category(category)
	rec.Origin = origin
	return &rec, nil
}

func scanStockRecords(rows pgx.Rows, origin entity.Origin) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows, origin)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
