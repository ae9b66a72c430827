package gradebook

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Store holds students, subjects and grades in insertion order.
// It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	students []Student
	subjects []Subject
	grades   []Grade
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) AddStudent(id, name string) error {
	if id == "" || name == "" {
		return errors.Wrap(ErrMissingField, "student id and name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.students {
		if st.ID == id {
			return errors.Wrapf(ErrDuplicateID, "student %q", id)
		}
	}
	s.students = append(s.students, Student{ID: id, Name: name})
	return nil
}

func (s *Store) AddSubject(id, name string) error {
	if id == "" || name == "" {
		return errors.Wrap(ErrMissingField, "subject id and name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subjects {
		if sub.ID == id {
			return errors.Wrapf(ErrDuplicateID, "subject %q", id)
		}
	}
	s.subjects = append(s.subjects, Subject{ID: id, Name: name})
	return nil
}

// UpsertGrade records grade for the (studentID, subjectID) pair, replacing any
// earlier value in place. created reports whether a new record was appended.
func (s *Store) UpsertGrade(studentID, subjectID string, grade float64) (created bool, err error) {
	if studentID == "" || subjectID == "" || math.IsNaN(grade) || grade < 0 || grade > 100 {
		return false, errors.Wrapf(ErrInvalidRange, "student %q subject %q grade %v", studentID, subjectID, grade)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := Grade{StudentID: studentID, SubjectID: subjectID, Grade: grade}
	for i := range s.grades {
		if s.grades[i].StudentID == studentID && s.grades[i].SubjectID == subjectID {
			s.grades[i] = g
			return false, nil
		}
	}
	s.grades = append(s.grades, g)
	return true, nil
}

// DeleteStudent removes the student and all of their grades.
func (s *Store) DeleteStudent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.students)
	s.students = filter(s.students, func(st Student) bool { return st.ID != id })
	s.grades = filter(s.grades, func(g Grade) bool { return g.StudentID != id })
	return len(s.students) != n
}

// DeleteSubject removes the subject and every grade recorded for it.
func (s *Store) DeleteSubject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.subjects)
	s.subjects = filter(s.subjects, func(sub Subject) bool { return sub.ID != id })
	s.grades = filter(s.grades, func(g Grade) bool { return g.SubjectID != id })
	return len(s.subjects) != n
}

func (s *Store) Students() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Student{}, s.students...)
}

func (s *Store) Subjects() []Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Subject{}, s.subjects...)
}

func (s *Store) Grades() []Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Grade{}, s.grades...)
}

// Join returns every student with their grades in recording order. A grade
// whose subject no longer exists keeps the raw subject id as its name.
func (s *Store) Join() []StudentGrades {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.subjectNames()
	out := make([]StudentGrades, 0, len(s.students))
	for _, st := range s.students {
		sg := StudentGrades{ID: st.ID, Name: st.Name, Grades: []SubjectGrade{}}
		for _, g := range s.grades {
			if g.StudentID != st.ID {
				continue
			}
			sg.Grades = append(sg.Grades, SubjectGrade{
				SubjectID:   g.SubjectID,
				SubjectName: lookup(names, g.SubjectID),
				Grade:       g.Grade,
			})
		}
		out = append(out, sg)
	}
	return out
}

// GradeRows lists all grades with display names resolved.
func (s *Store) GradeRows() []GradeRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make(map[string]string, len(s.students))
	for _, st := range s.students {
		students[st.ID] = st.Name
	}
	subjects := s.subjectNames()

	rows := make([]GradeRow, 0, len(s.grades))
	for _, g := range s.grades {
		rows = append(rows, GradeRow{
			StudentID:   g.StudentID,
			StudentName: lookup(students, g.StudentID),
			SubjectID:   g.SubjectID,
			SubjectName: lookup(subjects, g.SubjectID),
			Grade:       g.Grade,
			Passing:     g.Passing(),
		})
	}
	return rows
}

func (s *Store) subjectNames() map[string]string {
	m := make(map[string]string, len(s.subjects))
	for _, sub := range s.subjects {
		m[sub.ID] = sub.Name
	}
	return m
}

func lookup(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
