package catalog

// Version of the built-in picklist definitions. Bump when a column or type
// changes so generated scripts can be traced back to the catalog revision.
const Version = "2024.1"

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(Version, builtin()...)
}

func nameColumn(dataType string) Column {
	return Column{Name: "name", Label: "Name", DataType: dataType}
}

func labelColumn(dataType string) Column {
	return Column{Name: "label", Label: "Label", DataType: dataType}
}

func descriptionColumn() Column {
	return Column{Name: "description", Label: "Description", DataType: "VARCHAR"}
}

func builtin() []Picklist {
	return []Picklist{
		{
			SheetTitle:  "Language Items",
			Name:        "Language",
			Label:       "Language",
			Description: "Language names follow the ISO 639 standard for language classification (https://en.wikipedia.org/wiki/List_of_ISO_639_language_codes). This list is a subset of the ISO 639 language codes based on frequency of usage in HCP data.",
			Columns: []Column{
				nameColumn("CHAR(2)"),
				labelColumn("VARCHAR(20)"),
				{Name: "direction", Label: "Direction", DataType: "CHAR(3)", Description: "Direction of reading"},
			},
		},
		{
			SheetTitle:  "Country Items",
			Name:        "Country",
			Label:       "Country",
			Description: "Based on ISO 3166-1 standard country codes and names (https://en.wikipedia.org/wiki/List_of_ISO_3166_country_codes#Current_ISO_3166_country_codes).",
			Columns:     []Column{nameColumn("CHAR(2)"), labelColumn("VARCHAR(80)"), descriptionColumn()},
		},
		{
			SheetTitle:  "State Items",
			Name:        "State",
			Label:       "State",
			Description: "Based on ISO 3166-2 (https://en.wikipedia.org/wiki/ISO_3166-2) codes for identifying the principal subdivisions (e.g., provinces or states) of all countries coded in ISO 3166-1 (https://en.wikipedia.org/wiki/List_of_ISO_3166_country_codes#Current_ISO_3166_country_codes)",
			Columns:     []Column{nameColumn("VARCHAR(6)"), labelColumn("VARCHAR(80)"), descriptionColumn()},
		},
		{
			SheetTitle:  "HCP Type Items",
			Name:        "HCP_Type",
			Label:       "HCP Type",
			Description: "The role an individual plays in the life sciences industry, spanning from the development and commercialization of life science products to their delivery and administration in healthcare settings.",
			Columns:     []Column{nameColumn("CHAR(4)"), labelColumn("VARCHAR(40)"), descriptionColumn()},
		},
		{
			SheetTitle:  "Specialty Items",
			Name:        "Specialty",
			Label:       "Specialty",
			Description: "The primary medical field or expertise area to which the healthcare professional belongs. Uses the list of specialties.",
			Columns: []Column{
				nameColumn("CHAR(4)"),
				labelColumn("VARCHAR(40)"),
				descriptionColumn(),
				{Name: "specialty_group_mapping", Label: "Specialty Group Mapping", DataType: "CHAR(2)"},
			},
		},
		{
			SheetTitle:  "Specialty Group Items",
			Name:        "Specialty_Group",
			Label:       "Specialty Group",
			Description: "The primary overarching medical field or expertise area to which the healthcare provider belongs. Uses the list of global specialties.",
			Columns:     []Column{nameColumn("CHAR(2)"), labelColumn("VARCHAR(40)"), descriptionColumn()},
		},
		{
			SheetTitle:  "Medical Degree Items",
			Name:        "Medical_Degree",
			Label:       "Medical Degree",
			Description: "The primary medical qualification or degree obtained.",
			Columns:     []Column{nameColumn("VARCHAR(4)"), labelColumn("VARCHAR(40)"), descriptionColumn()},
		},
		{
			SheetTitle:  "HCP Status Items",
			Name:        "HCP_Status",
			Label:       "HCP Status",
			Description: "Indicates whether the healthcare professional is currently active and working or not.",
			Columns:     []Column{nameColumn("CHAR(4)"), labelColumn("VARCHAR(20)"), descriptionColumn()},
		},
		{
			SheetTitle:  "Level Items",
			Name:        "Level",
			Label:       "Level",
			Description: "Indicates the level of importance of this individual to the company, where level 5 indicates the highest level of importance. Can be used to drive business rules. For example: You may want to limit personalized promotions to levels 3 and below. You may also require a single relationship owner for level 5.",
			Columns:     []Column{nameColumn("SMALLINT"), labelColumn("VARCHAR(20)"), descriptionColumn()},
		},
		{
			SheetTitle:  "Adopter Type Items",
			Name:        "Adopter_Type",
			Label:       "Adopter Type",
			Description: "A categorization of the individual based on their willingness and speed to adopt new medical technologies, treatments, practices, or products.",
			Columns:     []Column{nameColumn("CHAR(4)"), labelColumn("VARCHAR(20)"), descriptionColumn()},
		},
		{
			SheetTitle:  "Address Status Items",
			Name:        "Address_Status",
			Label:       "Address Status",
			Description: "Indicates whether this address is currently usable for contact purposes.",
			Columns:     []Column{nameColumn("VARCHAR(4)"), labelColumn("VARCHAR(20)"), descriptionColumn()},
		},
	}
}
