package readstore

import (
	"time"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

// Row to view copying. Columns whose names differ between the row and the
// view (the *Cents columns) are assigned by hand after the copy.
var copyOption = copier.Option{
	IgnoreEmpty: false,
	DeepCopy:    false,
	Converters: []copier.TypeConverter{
		{
			SrcType: pgtype.Timestamptz{},
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				return pgconv.TimeFromPgtype(src.(pgtype.Timestamptz)), nil
			},
		},
		{
			SrcType: pgtype.Date{},
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				return pgconv.DateFromPgtype(src.(pgtype.Date)), nil
			},
		},
		{
			SrcType: int64(0),
			DstType: money.Money{},
			Fn: func(src interface{}) (interface{}, error) {
				return money.FromCents(src.(int64)), nil
			},
		},
	},
}

func copyView(dst, src any) error {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return errs.Wrap(err, "failed to map row to view")
	}
	return nil
}
