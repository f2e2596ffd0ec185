package service

import (
	"context"
	"time"

	"github.com/rasulq/homework-bot/internal/models"
)

// Репозитории в памяти для тестов сервисного слоя.

type fakeTeacherRepo struct {
	teachers map[int64]*models.Teacher
	nextID   int64
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: make(map[int64]*models.Teacher), nextID: 1}
}

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = r.nextID
	r.nextID++
	copied := *teacher
	r.teachers[teacher.ID] = &copied
	return nil
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := r.teachers[id]
	if !ok {
		return nil, nil
	}
	copied := *teacher
	return &copied, nil
}

func (r *fakeTeacherRepo) GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error) {
	for _, teacher := range r.teachers {
		if teacher.TelegramID == telegramID {
			copied := *teacher
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = r.nextID
	r.nextID++
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	copied := *student
	return &copied, nil
}

func (r *fakeStudentRepo) GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error) {
	for _, student := range r.students {
		if student.TelegramID == telegramID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) GetAll(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0, len(r.students))
	for id := int64(1); id < r.nextID; id++ {
		if student, ok := r.students[id]; ok {
			students = append(students, *student)
		}
	}
	return students, nil
}

func (r *fakeStudentRepo) AddPoints(ctx context.Context, id int64, delta int) error {
	if student, ok := r.students[id]; ok {
		student.TotalPoints += delta
	}
	return nil
}

type fakeHomeworkRepo struct {
	homeworks map[int64]*models.Homework
	nextID    int64
}

func newFakeHomeworkRepo() *fakeHomeworkRepo {
	return &fakeHomeworkRepo{homeworks: make(map[int64]*models.Homework), nextID: 1}
}

func (r *fakeHomeworkRepo) Create(ctx context.Context, homework *models.Homework) error {
	for _, existing := range r.homeworks {
		if existing.TeacherID == homework.TeacherID {
			existing.Active = false
		}
	}
	homework.ID = r.nextID
	r.nextID++
	copied := *homework
	r.homeworks[homework.ID] = &copied
	return nil
}

func (r *fakeHomeworkRepo) GetByID(ctx context.Context, id int64) (*models.Homework, error) {
	homework, ok := r.homeworks[id]
	if !ok {
		return nil, nil
	}
	copied := *homework
	return &copied, nil
}

func (r *fakeHomeworkRepo) GetActive(ctx context.Context) (*models.Homework, error) {
	for id := r.nextID - 1; id >= 1; id-- {
		if homework, ok := r.homeworks[id]; ok && homework.Active {
			copied := *homework
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeHomeworkRepo) GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error) {
	for id := r.nextID - 1; id >= 1; id-- {
		if homework, ok := r.homeworks[id]; ok && homework.Active && homework.TeacherID == teacherID {
			copied := *homework
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeHomeworkRepo) GetAll(ctx context.Context) ([]models.Homework, error) {
	homeworks := make([]models.Homework, 0, len(r.homeworks))
	for id := int64(1); id < r.nextID; id++ {
		if homework, ok := r.homeworks[id]; ok {
			homeworks = append(homeworks, *homework)
		}
	}
	return homeworks, nil
}

type fakeSubmissionRepo struct {
	submissions map[int64]*models.Submission
	students    *fakeStudentRepo
	nextID      int64
}

func newFakeSubmissionRepo(students *fakeStudentRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		submissions: make(map[int64]*models.Submission),
		students:    students,
		nextID:      1,
	}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = r.nextID
	r.nextID++
	copied := *submission
	r.submissions[submission.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, nil
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetByFileName(ctx context.Context, fileName string) (*models.Submission, error) {
	var found *models.Submission
	for id := int64(1); id < r.nextID; id++ {
		submission, ok := r.submissions[id]
		if !ok {
			continue
		}
		for _, name := range submission.FileNames {
			if name == fileName {
				found = submission
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetByHomeworkID(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error) {
	var result []models.SubmissionWithStudent
	for id := int64(1); id < r.nextID; id++ {
		submission, ok := r.submissions[id]
		if !ok || submission.HomeworkID != homeworkID {
			continue
		}
		row := models.SubmissionWithStudent{Submission: *submission}
		if r.students != nil {
			if student, _ := r.students.GetByID(ctx, submission.StudentID); student != nil {
				row.StudentFirstName = student.FirstName
				row.StudentLastName = student.LastName
			}
		}
		result = append(result, row)
	}
	return result, nil
}

func (r *fakeSubmissionRepo) CountByStudentAndHomework(ctx context.Context, studentID, homeworkID int64) (int, error) {
	count := 0
	for _, submission := range r.submissions {
		if submission.StudentID == studentID && submission.HomeworkID == homeworkID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) SetGrade(ctx context.Context, id int64, grade, bonusPoints int) error {
	if submission, ok := r.submissions[id]; ok {
		submission.Grade = &grade
		submission.BonusPoints = bonusPoints
		submission.IsReviewed = true
	}
	return nil
}

type capturedEvents struct {
	created []*models.SubmissionCreatedEvent
	graded  []*models.SubmissionGradedEvent
}

func (c *capturedEvents) PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error {
	c.created = append(c.created, event)
	return nil
}

func (c *capturedEvents) PublishSubmissionGraded(ctx context.Context, event *models.SubmissionGradedEvent) error {
	c.graded = append(c.graded, event)
	return nil
}

func (c *capturedEvents) Close() error { return nil }

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
