package main

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmalu/studyhub/core/course"
)

var seedCatalog = []struct {
	course   course.Course
	subjects []course.Subject
}{
	{
		course: course.Course{
			Name:        "Master of Computer Science",
			Description: "Comprehensive study of computer science topics.",
			Credits:     0,
			Instructor:  "Various",
		},
		subjects: []course.Subject{
			{
				Name:        "Advanced Algorithms",
				Description: "Study of complex algorithms and optimization techniques.",
				Credits:     3,
				Instructor:  "Dr. Donald Knuth",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=ad79nYk2keg"),
			},
			{
				Name:        "Distributed Systems",
				Description: "Principles of distributed computing and systems design.",
				Credits:     3,
				Instructor:  "Dr. Leslie Lamport",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=duIZs7ElbLo"),
			},
			{
				Name:        "Operating Systems",
				Description: "In-depth study of OS concepts including concurrency and memory management.",
				Credits:     3,
				Instructor:  "Dr. Andrew Tanenbaum",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=26pZLYyN9Bw"),
			},
			{
				Name:        "Computer Networks",
				Description: "Protocols, architectures, and applications of computer networks.",
				Credits:     3,
				Instructor:  "Dr. Vinton Cerf",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=QATFkZgISZc"),
			},
			{
				Name:        "Database Systems",
				Description: "Design, implementation, and management of relational databases.",
				Credits:     3,
				Instructor:  "Dr. Michael Stonebraker",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=SwRZJxH8fM8"),
			},
			{
				Name:        "Software Engineering",
				Description: "Systematic approach to software development and project management.",
				Credits:     3,
				Instructor:  "Dr. Ian Sommerville",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=G0Xh06pNj_o"),
			},
			{
				Name:        "Cybersecurity Fundamentals",
				Description: "Concepts and techniques for securing computer systems.",
				Credits:     3,
				Instructor:  "Dr. Gene Spafford",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=5p9vFQYlBOg"),
			},
			{
				Name:        "Mobile Application Development",
				Description: "Design and develop applications for mobile platforms.",
				Credits:     3,
				Instructor:  "Dr. Josh Marinacci",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=tnR_6m5vPpI"),
			},
			{
				Name:        "Human-Computer Interaction",
				Description: "Designing user-centered computer interfaces and systems.",
				Credits:     3,
				Instructor:  "Dr. Ben Shneiderman",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=mrZFi3_yGR0"),
			},
			{
				Name:        "Computer Graphics",
				Description: "Techniques and applications of generating images with computers.",
				Credits:     3,
				Instructor:  "Dr. Jim Blinn",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=IAn5yTh5gX8"),
			},
			{
				Name:        "Data Structures and Analysis",
				Description: "Efficient data organization for problem-solving.",
				Credits:     3,
				Instructor:  "Dr. Robert Sedgewick",
				VideoURL:    null.StringFrom("https://www.youtube.com/watch?v=BpK0cIYXAmQ"),
			},
		},
	},
}

// seedCourses loads the default catalog. Courses already present (by name) are skipped
// so the command can be re-run safely.
func (cli *commandLine) seedCourses() error {
	ctx := context.Background()

	existing, err := cli.catalogRepo.QueryAllCourses(ctx)
	if err != nil {
		return err
	}
	existingNames := make(map[string]bool, len(existing))
	for _, crs := range existing {
		existingNames[crs.Name] = true
	}

	for _, entry := range seedCatalog {
		if existingNames[entry.course.Name] {
			continue
		}

		crs := entry.course
		crs.CreatedAt = time.Now().UTC()
		crs, err = cli.catalogRepo.CreateCourse(ctx, crs)
		if err != nil {
			return err
		}

		for _, subj := range entry.subjects {
			subj.CourseID = crs.ID
			subj.CreatedAt = time.Now().UTC()
			if _, err = cli.catalogRepo.CreateSubject(ctx, subj); err != nil {
				return err
			}
		}
	}
	return nil
}
