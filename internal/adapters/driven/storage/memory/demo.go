package memory

import "github.com/custodia-labs/estatemap/internal/core/domain"

// DemoProjects returns a small Bangalore catalogue for trying the app
// without an imported dataset.
func DemoProjects() []domain.Project {
	return []domain.Project{
		demoProject(3, "Sobha Dream Acres", "Sobha Limited", "Varthur", 12.9352, 77.7220, "2019-03-01", "2025-12-31"),
		demoProject(5, "Brigade Utopia", "Brigade Enterprises", "Varthur", 12.9405, 77.7389, "2020-06-15", "2026-06-30"),
		demoProject(7, "Prestige Lakeside Habitat Villas", "Prestige Estates Projects", "Whitefield", 12.9698, 77.7500, "2018-01-10", "2024-12-31"),
		demoProject(11, "Purva Palm Beach", "Puravankara Limited", "Hennur", 13.0358, 77.6431, "2017-09-01", "2023-09-30"),
		demoProject(12, "Mantri Serenity", "Mantri Developers", "Kanakapura Road", 12.8797, 77.5460, "2016-04-20", "2022-03-31"),
		demoProject(14, "Indiranagar Residency", "Salarpuria Sattva", "Indiranagar", 12.9784, 77.6408, "2021-02-01", "2025-01-31"),
		demoProject(18, "Godrej Woodsman Estate", "Godrej Properties", "Hebbal", 13.0450, 77.5950, "2019-11-11", "2024-10-31"),
		demoProject(21, "Whitefield Greens", "Assetz Property Group", "Whitefield", 12.9822, 77.7310, "2022-05-05", "2027-05-31"),
	}
}

func demoProject(id int64, name, promoter, taluk string, lat, lon float64, start, end string) domain.Project {
	return domain.Project{
		ProjectSummary: domain.ProjectSummary{ID: id, Name: name, Latitude: lat, Longitude: lon},
		ProjectDetails: domain.ProjectDetails{
			ProjectName:            name,
			PromoterName:           promoter,
			ProjectStatus:          "NEW",
			RERARegistrationNumber: "PRM/KA/RERA/1251/446/PR/" + start[:4] + "/" + name[:3],
			SourceOfWater:          "BWSSB",
			ApprovingAuthority:     "BBMP",
			ProjectStartDate:       start,
			ProposedCompletionDate: end,
		},
		District:            "BENGALURU URBAN",
		Taluk:               taluk,
		LandUnderLitigation: "NO",
		ApprovalStatus:      "APPROVED",
		HasLocation:         true,
	}
}
