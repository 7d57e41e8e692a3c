package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// nextNumber generates the next document number of the form
// <prefix><YYMMDD><seq 4>. The sequence restarts at 1 each day.
func nextNumber(db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	currentDate := time.Now().Format("060102")
	pattern := prefix + currentDate + "%"

	var last string
	err := db.Model(model).
		Where(column+" LIKE ?", pattern).
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := 1
	if len(last) == len(prefix)+10 {
		lastSeq, err := strconv.Atoi(last[len(last)-4:])
		if err == nil {
			seq = lastSeq + 1
		}
	}

	return fmt.Sprintf("%s%s%04d", prefix, currentDate, seq), nil
}
