package database

import (
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/market?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/market?parseTime=true",
		},
		{
			name: "url form",
			in:   "mysql://root:pw@db:3306/market",
			want: "root:pw@tcp(db:3306)/market?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc with overrides",
			in:   "jdbc:mysql://db:3306/market?useSSL=false&characterEncoding=utf8&serverTimezone=UTC",
			user: "app", pass: "secret",
			want: "app:secret@tcp(db:3306)/market?charset=utf8&loc=UTC&parseTime=true&tls=false",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	masked := maskDSN("postgres://app:secret@db:5432/market")
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "@db:5432/market")
	assert.Equal(t, "root:****@tcp(db:3306)/market", maskDSN("root:pw@tcp(db:3306)/market"))
	assert.Equal(t, "host=db user=app", maskDSN("host=db user=app"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(fmt.Errorf("other")))
}
