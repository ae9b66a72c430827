package gradebook

// Seed loads the sample class used for demos: three subjects, three
// students and a grade for every pair.
func Seed(s *Store) error {
	subjects := []Subject{
		{ID: "MATH101", Name: "Mathematics"},
		{ID: "ENG101", Name: "English"},
		{ID: "SCI101", Name: "Science"},
	}
	students := []Student{
		{ID: "S001", Name: "Alex Johnson"},
		{ID: "S002", Name: "Maria Garcia"},
		{ID: "S003", Name: "James Smith"},
	}
	grades := []Grade{
		{StudentID: "S001", SubjectID: "MATH101", Grade: 65},
		{StudentID: "S001", SubjectID: "ENG101", Grade: 78},
		{StudentID: "S001", SubjectID: "SCI101", Grade: 82},
		{StudentID: "S002", SubjectID: "MATH101", Grade: 92},
		{StudentID: "S002", SubjectID: "ENG101", Grade: 88},
		{StudentID: "S002", SubjectID: "SCI101", Grade: 95},
		{StudentID: "S003", SubjectID: "MATH101", Grade: 75},
		{StudentID: "S003", SubjectID: "ENG101", Grade: 70},
		{StudentID: "S003", SubjectID: "SCI101", Grade: 68},
	}

	for _, sub := range subjects {
		if err := s.AddSubject(sub.ID, sub.Name); err != nil {
			return err
		}
	}
	for _, st := range students {
		if err := s.AddStudent(st.ID, st.Name); err != nil {
			return err
		}
	}
	for _, g := range grades {
		if _, err := s.UpsertGrade(g.StudentID, g.SubjectID, g.Grade); err != nil {
			return err
		}
	}
	return nil
}
