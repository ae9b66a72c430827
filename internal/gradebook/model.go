package gradebook

// PassingGrade is the lowest grade (inclusive) that counts as a pass.
const PassingGrade = 70

type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Grade struct {
	StudentID string  `json:"studentId"`
	SubjectID string  `json:"subjectId"`
	Grade     float64 `json:"grade"`
}

func (g Grade) Passing() bool {
	return g.Grade >= PassingGrade
}

// SubjectGrade is a Grade resolved against its Subject.
type SubjectGrade struct {
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Grade       float64 `json:"grade"`
}

// StudentGrades is one student together with every grade recorded for them.
type StudentGrades struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Grades []SubjectGrade `json:"grades"`
}

// GradeRow is a grade as shown in the grades table.
type GradeRow struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Grade       float64 `json:"grade"`
	Passing     bool    `json:"passing"`
}
