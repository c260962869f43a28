package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TrilhaModel struct {
	TrilhaID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:trilha_id" json:"trilha_id"`
	TrilhaChurchID          uuid.UUID      `gorm:"type:uuid;not null;index;column:trilha_church_id" json:"trilha_church_id"`
	TrilhaTitle             string         `gorm:"type:varchar(200);not null;column:trilha_title" json:"trilha_title"`
	TrilhaDescription       *string        `gorm:"type:text;column:trilha_description" json:"trilha_description,omitempty"`
	TrilhaShareWithChildren bool           `gorm:"not null;default:false;column:trilha_share_with_children" json:"trilha_share_with_children"`
	TrilhaCreatedAt         time.Time      `gorm:"column:trilha_created_at;autoCreateTime" json:"trilha_created_at"`
	TrilhaUpdatedAt         time.Time      `gorm:"column:trilha_updated_at;autoUpdateTime" json:"trilha_updated_at"`
	TrilhaDeletedAt         gorm.DeletedAt `gorm:"column:trilha_deleted_at;index" json:"-"`

	Etapas []EtapaModel `gorm:"foreignKey:EtapaTrilhaID;references:TrilhaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TrilhaModel) TableName() string { return "trilhas" }

// EtapaModel carries the church of its trilha.
type EtapaModel struct {
	EtapaID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:etapa_id" json:"etapa_id"`
	EtapaChurchID  uuid.UUID `gorm:"type:uuid;not null;index;column:etapa_church_id" json:"etapa_church_id"`
	EtapaTrilhaID  uuid.UUID `gorm:"type:uuid;not null;index:idx_etapas_trilha_position,priority:1;column:etapa_trilha_id" json:"etapa_trilha_id"`
	EtapaTitle     string    `gorm:"type:varchar(200);not null;column:etapa_title" json:"etapa_title"`
	EtapaPosition  int       `gorm:"not null;default:0;index:idx_etapas_trilha_position,priority:2;column:etapa_position" json:"etapa_position"`
	EtapaCreatedAt time.Time `gorm:"column:etapa_created_at;autoCreateTime" json:"etapa_created_at"`
	EtapaUpdatedAt time.Time `gorm:"column:etapa_updated_at;autoUpdateTime" json:"etapa_updated_at"`

	Passos []PassoModel `gorm:"foreignKey:PassoEtapaID;references:EtapaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EtapaModel) TableName() string { return "etapas" }

type PassoModel struct {
	PassoID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:passo_id" json:"passo_id"`
	PassoChurchID  uuid.UUID `gorm:"type:uuid;not null;index;column:passo_church_id" json:"passo_church_id"`
	PassoEtapaID   uuid.UUID `gorm:"type:uuid;not null;index:idx_passos_etapa_position,priority:1;column:passo_etapa_id" json:"passo_etapa_id"`
	PassoTitle     string    `gorm:"type:varchar(200);not null;column:passo_title" json:"passo_title"`
	PassoContent   *string   `gorm:"type:text;column:passo_content" json:"passo_content,omitempty"`
	PassoVideoURL  *string   `gorm:"type:text;column:passo_video_url" json:"passo_video_url,omitempty"`
	PassoPosition  int       `gorm:"not null;default:0;index:idx_passos_etapa_position,priority:2;column:passo_position" json:"passo_position"`
	PassoCreatedAt time.Time `gorm:"column:passo_created_at;autoCreateTime" json:"passo_created_at"`
	PassoUpdatedAt time.Time `gorm:"column:passo_updated_at;autoUpdateTime" json:"passo_updated_at"`

	Questions []QuizQuestionModel `gorm:"foreignKey:QuizQuestionPassoID;references:PassoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PassoModel) TableName() string { return "passos" }

type QuizQuestionModel struct {
	QuizQuestionID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_question_id" json:"quiz_question_id"`
	QuizQuestionChurchID     uuid.UUID      `gorm:"type:uuid;not null;index;column:quiz_question_church_id" json:"quiz_question_church_id"`
	QuizQuestionPassoID      uuid.UUID      `gorm:"type:uuid;not null;index;column:quiz_question_passo_id" json:"quiz_question_passo_id"`
	QuizQuestionPrompt       string         `gorm:"type:text;not null;column:quiz_question_prompt" json:"quiz_question_prompt"`
	QuizQuestionOptions      pq.StringArray `gorm:"type:text[];not null;column:quiz_question_options" json:"quiz_question_options"`
	QuizQuestionCorrectIndex int            `gorm:"not null;column:quiz_question_correct_index" json:"quiz_question_correct_index"`
	QuizQuestionPosition     int            `gorm:"not null;default:0;column:quiz_question_position" json:"quiz_question_position"`
	QuizQuestionCreatedAt    time.Time      `gorm:"column:quiz_question_created_at;autoCreateTime" json:"quiz_question_created_at"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

// PassoProgressModel and QuizAttemptModel belong to the learner's church,
// which may be a child of the church owning the trilha.
type PassoProgressModel struct {
	PassoProgressID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:passo_progress_id" json:"passo_progress_id"`
	PassoProgressChurchID    uuid.UUID `gorm:"type:uuid;not null;index;column:passo_progress_church_id" json:"passo_progress_church_id"`
	PassoProgressPassoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_passo_progress_user,priority:1;column:passo_progress_passo_id" json:"passo_progress_passo_id"`
	PassoProgressUserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_passo_progress_user,priority:2;column:passo_progress_user_id" json:"passo_progress_user_id"`
	PassoProgressCompletedAt time.Time `gorm:"column:passo_progress_completed_at;autoCreateTime" json:"passo_progress_completed_at"`

	Passo *PassoModel `gorm:"foreignKey:PassoProgressPassoID;references:PassoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PassoProgressModel) TableName() string { return "passo_progress" }

type QuizAttemptModel struct {
	QuizAttemptID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_attempt_id" json:"quiz_attempt_id"`
	QuizAttemptChurchID  uuid.UUID     `gorm:"type:uuid;not null;index;column:quiz_attempt_church_id" json:"quiz_attempt_church_id"`
	QuizAttemptPassoID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_quiz_attempts_passo_user,priority:1;column:quiz_attempt_passo_id" json:"quiz_attempt_passo_id"`
	QuizAttemptUserID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_quiz_attempts_passo_user,priority:2;column:quiz_attempt_user_id" json:"quiz_attempt_user_id"`
	QuizAttemptScore     int           `gorm:"not null;column:quiz_attempt_score" json:"quiz_attempt_score"`
	QuizAttemptPassed    bool          `gorm:"not null;column:quiz_attempt_passed" json:"quiz_attempt_passed"`
	QuizAttemptAnswers   pq.Int64Array `gorm:"type:bigint[];column:quiz_attempt_answers" json:"quiz_attempt_answers"`
	QuizAttemptCreatedAt time.Time     `gorm:"column:quiz_attempt_created_at;autoCreateTime" json:"quiz_attempt_created_at"`

	Passo *PassoModel `gorm:"foreignKey:QuizAttemptPassoID;references:PassoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuizAttemptModel) TableName() string { return "quiz_attempts" }
