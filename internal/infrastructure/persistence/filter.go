package persistence

import (
	"regexp"
	"strings"

	"github.com/salonkit/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// orderColumnPattern restricts order-by input to plain column identifiers.
// Anything else falls back to created_at so filter values can never reach
// the SQL string unvalidated.
var orderColumnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// applyPaging applies ordering and pagination from the shared filter
func applyPaging(query *gorm.DB, f shared.Filter) *gorm.DB {
	orderBy := f.OrderBy
	if !orderColumnPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(f.OrderDir, "asc") {
		orderDir = "ASC"
	}
	return query.
		Order(orderBy + " " + orderDir).
		Offset(f.Offset()).
		Limit(f.Limit())
}
