package sqltype

// PostgresVersion identifies the revision of postgresTypes.
const PostgresVersion = "2024.1"

// postgresTypes maps type tokens and compound picklist keys to PostgreSQL
// types. Picklist value tables declare raw SQL types, hence the identity
// entries at the end.
var postgresTypes = map[string]string{
	"Text 10":  "VARCHAR(10)",
	"Text 15":  "VARCHAR(15)",
	"Text 20":  "VARCHAR(20)",
	"Text 25":  "VARCHAR(25)",
	"Text 40":  "VARCHAR(40)",
	"Text 50":  "VARCHAR(50)",
	"Text 80":  "VARCHAR(80)",
	"Text 100": "VARCHAR(100)",
	"Boolean":  "BOOLEAN",

	"hcp.language.Picklist":                  "CHAR(2)",
	"hcp.country.Picklist":                   "CHAR(2)",
	"hcp.state.Picklist":                     "VARCHAR(6)",
	"hcp.hcp_type.Picklist":                  "CHAR(4)",
	"hcp.spec_1.Picklist":                    "VARCHAR(4)",
	"hcp.all_spec.Multivalue Picklist":       "VARCHAR(4)[]",
	"hcp.spec_group_1.Picklist":              "CHAR(2)",
	"hcp.all_spec_group.Multivalue Picklist": "CHAR(2)[]",
	"hcp.degree_1.Picklist":                  "VARCHAR(4)",
	"hcp.all_degree.Multivalue Picklist":     "VARCHAR(4)[]",
	"hcp.status.Picklist":                    "VARCHAR(4)",
	"hcp.level.Picklist":                     "SMALLINT",
	"hcp.adopter_type.Picklist":              "CHAR(4)",
	"address.country.Picklist":               "CHAR(2)",
	"address.state.Picklist":                 "VARCHAR(6)",
	"address.status.Picklist":                "VARCHAR(4)",

	"Entity (HCP)": "INT",

	"SMALLINT":    "SMALLINT",
	"CHAR(2)":     "CHAR(2)",
	"CHAR(3)":     "CHAR(3)",
	"CHAR(4)":     "CHAR(4)",
	"VARCHAR(4)":  "VARCHAR(4)",
	"VARCHAR(6)":  "VARCHAR(6)",
	"VARCHAR(20)": "VARCHAR(20)",
	"VARCHAR(40)": "VARCHAR(40)",
	"VARCHAR(80)": "VARCHAR(80)",
	"VARCHAR":     "VARCHAR",
}

// Postgres returns the resolver for the PostgreSQL dialect.
func Postgres() *Resolver {
	return NewResolver("postgresql", PostgresVersion, postgresTypes)
}
