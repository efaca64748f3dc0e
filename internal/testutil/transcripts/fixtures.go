package transcripts

import "github.com/Veraticus/gradcert/internal/layout"

// Fixture is a named transcript with a known certification outcome under the default
// MS Physics policy.
type Fixture struct {
	build       func() *Builder
	Name        string
	Description string
	StudentName string
	StudentID   string
	ExpectPass  bool
}

// Pages renders the fixture.
func (f Fixture) Pages() []layout.Page {
	return f.build().Pages()
}

// Builder returns a fresh builder for the fixture, for tests that want to vary it.
func (f Fixture) Builder() *Builder {
	return f.build()
}

func c(code, title string, credits float64, grade string) Course {
	return Course{Code: code, Title: title, Credits: credits, Grade: grade}
}

// UndergraduateSemesters is a four-year physics undergraduate record.
func UndergraduateSemesters() []Semester {
	return []Semester{
		{Term: "2019 Fall", Courses: []Course{
			c("PHY 151", "General Physics I", 4, "A"),
			c("MTH 151", "Calculus I", 4, "A"),
			c("CHM 111", "General Chemistry I", 4, "A-"),
			c("ENG 101", "Composition I", 3, "B+"),
		}},
		{Term: "2020 Spring", Courses: []Course{
			c("PHY 152", "General Physics II", 4, "A"),
			c("MTH 152", "Calculus II", 4, "A-"),
			c("CHM 112", "General Chemistry II", 4, "B+"),
			c("ENG 102", "Composition II", 3, "A"),
		}},
		{Term: "2020 Fall", Courses: []Course{
			c("PHY 253", "Modern Physics", 3, "A"),
			c("MTH 251", "Calculus III", 4, "A"),
			c("PHY 271", "Physics Lab I", 2, "A"),
			c("CSC 101", "Intro Programming", 3, "B+"),
			c("HIS 101", "World History I", 3, "A-"),
		}},
		{Term: "2021 Spring", Courses: []Course{
			c("PHY 254", "Thermal Physics", 3, "A-"),
			c("MTH 252", "Differential Equations", 4, "A"),
			c("PHY 272", "Physics Lab II", 2, "A"),
			c("CSC 102", "Data Structures", 3, "B"),
			c("HIS 102", "World History II", 3, "A"),
		}},
		{Term: "2021 Fall", Courses: []Course{
			c("PHY 311", "Mechanics", 3, "A"),
			c("PHY 321", "Electromagnetism I", 3, "A-"),
			c("MTH 331", "Linear Algebra", 3, "A"),
			c("PHY 371", "Physics Lab III", 2, "A"),
			c("PSY 101", "Intro Psychology", 3, "A-"),
		}},
		{Term: "2022 Spring", Courses: []Course{
			c("PHY 322", "Electromagnetism II", 3, "A"),
			c("PHY 341", "Quantum Mechanics I", 3, "A"),
			c("MTH 332", "Complex Analysis", 3, "B+"),
			c("PHY 372", "Physics Lab IV", 2, "A"),
			c("SOC 101", "Intro Sociology", 3, "A"),
		}},
		{Term: "2022 Fall", Courses: []Course{
			c("PHY 342", "Quantum Mechanics II", 3, "A"),
			c("PHY 351", "Statistical Mechanics", 3, "A-"),
			c("PHY 411", "Adv Mechanics", 3, "A"),
			c("PHY 491", "Senior Seminar", 1, "A"),
			c("PHL 201", "Ethics", 3, "A-"),
		}},
		{Term: "2023 Spring", Courses: []Course{
			c("PHY 412", "Elec & Magnt Fields II", 3, "A"),
			c("PHY 421", "Optics", 3, "A"),
			c("PHY 492", "Senior Thesis", 3, "A"),
			c("PHY 471", "Adv Physics Lab", 2, "A"),
			c("ART 101", "Art Appreciation", 3, "B+"),
		}},
	}
}

// Fixtures returns the standard certification scenarios.
func Fixtures() []Fixture {
	return []Fixture{
		{
			Name:        "pass_standard",
			Description: "Full undergraduate and graduate record meeting every requirement",
			StudentName: "Test Student 001",
			StudentID:   "99990001",
			ExpectPass:  true,
			build: func() *Builder {
				return New("Test Student 001", "99990001").
					WithStandardUndergraduate().
					WithHonours("Magna Cum Laude").
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A-"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "B+"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("PHY 571", "Statistical Mechanics", 3, "A-"),
							c("EAS 520", "Earth System Science", 3, "B+"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
						}},
					)
			},
		},
		{
			Name:        "pass_grad_only",
			Description: "Graduate record only, with one capped 400-level course",
			StudentName: "Test Student 002",
			StudentID:   "99990002",
			ExpectPass:  true,
			build: func() *Builder {
				return New("Test Student 002", "99990002").
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
							c("PHY 412", "Elec & Magnt Fields II", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A-"),
							c("PHY 521", "Electrodynamics I", 3, "B+"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("EAS 502", "Earth Science", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 680", "Independent Study", 3, "A"),
						}},
					)
			},
		},
		{
			Name:        "pass_with_transfer",
			Description: "Transfer credit block counted toward core",
			StudentName: "Test Student 003",
			StudentID:   "99990003",
			ExpectPass:  true,
			build: func() *Builder {
				return New("Test Student 003", "99990003").
					WithStandardUndergraduate().
					WithTransfer("Riverside Community College",
						c("PHY 571", "Statistical Mechanics", 3, ""),
					).
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
						}},
					)
			},
		},
		{
			Name:        "pass_excess_research",
			Description: "Nine research credits, six applied",
			StudentName: "Test Student 004",
			StudentID:   "99990004",
			ExpectPass:  true,
			build: func() *Builder {
				return New("Test Student 004", "99990004").
					WithStandardUndergraduate().
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("PHY 571", "Statistical Mechanics", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
							c("PHY 680", "Independent Study", 3, "A"),
						}},
					)
			},
		},
		{
			Name:        "fail_insufficient_core",
			Description: "Twelve core credits",
			StudentName: "Test Student 005",
			StudentID:   "99990005",
			build: func() *Builder {
				return New("Test Student 005", "99990005").
					WithStandardUndergraduate().
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("EAS 520", "Earth System Science", 3, "A"),
							c("EAS 502", "Earth Science", 3, "A"),
							c("MTH 573", "Numerical Analysis", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
						}},
					)
			},
		},
		{
			Name:        "fail_insufficient_total",
			Description: "Twenty-seven applied credits",
			StudentName: "Test Student 006",
			StudentID:   "99990006",
			build: func() *Builder {
				return New("Test Student 006", "99990006").
					WithStandardUndergraduate().
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
						}},
					)
			},
		},
		{
			Name:        "fail_excess_400level",
			Description: "Nine 400-level credits, only six applied",
			StudentName: "Test Student 007",
			StudentID:   "99990007",
			build: func() *Builder {
				return New("Test Student 007", "99990007").
					WithStandardUndergraduate().
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
							c("PHY 412", "Elec & Magnt Fields II", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 415", "Advanced Lab I", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
							c("PHY 416", "Advanced Lab II", 3, "A"),
						}},
					)
			},
		},
		{
			Name:        "fail_invalid_course",
			Description: "Non-whitelisted external course BIO 520",
			StudentName: "Test Student 008",
			StudentID:   "99990008",
			build: func() *Builder {
				return New("Test Student 008", "99990008").
					WithStandardUndergraduate().
					WithGraduate(
						Semester{Term: "2023 Fall", Courses: []Course{
							c("PHY 543", "Quantum Mechanics I", 3, "A"),
							c("PHY 561", "Classical Mechanics", 3, "A"),
						}},
						Semester{Term: "2024 Spring", Courses: []Course{
							c("PHY 544", "Quantum Mechanics II", 3, "A"),
							c("PHY 521", "Electrodynamics I", 3, "A"),
							c("PHY 510", "Mathematical Methods", 3, "A"),
						}},
						Semester{Term: "2024 Fall", Courses: []Course{
							c("PHY 522", "Electrodynamics II", 3, "A"),
							c("EAS 520", "Earth System Science", 3, "A"),
							c("BIO 520", "Advanced Biology", 3, "A"),
						}},
						Semester{Term: "2025 Spring", Courses: []Course{
							c("PHY 690", "Graduate Thesis", 6, "A"),
						}},
					)
			},
		},
	}
}

// Lookup returns the fixture with the given name.
func Lookup(name string) (Fixture, bool) {
	for _, f := range Fixtures() {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}
