// 报表演示数据种子脚本
//
// 给指定班级批量生成学生、已发布Quiz和分层答题记录（差/中/好三档），
// 用于报表与主题掌握度页面的演示和联调。
//
// 用法: go run scripts/seed_reports.go -class-code ABC12345
// 清理: go run scripts/seed_reports.go -class-code ABC12345 -cleanup

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"notedu_backend/internal/config"
	"notedu_backend/internal/model"
	"notedu_backend/pkg/database"
	"notedu_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const (
	seedUserPrefix = "seed_student"
	seedQuizPrefix = "[SEED]"
)

var topicPool = []string{
	"Tasarım Kalıpları",
	"Veri Yapıları",
	"Algoritmalar",
	"Nesne Yönelimli Programlama",
	"Veri Tabanları",
	"Ağ Programlama",
	"Yazılım Mimarisi",
}

func main() {
	classCode := flag.String("class-code", "", "要填充数据的班级邀请码")
	students := flag.Int("students", 12, "生成的学生数")
	quizzes := flag.Int("quizzes", 3, "生成的Quiz数")
	topics := flag.Int("topics", 5, "使用的主题数")
	questions := flag.Int("questions", 6, "每个Quiz的题目数")
	cleanup := flag.Bool("cleanup", false, "清理此前生成的种子数据")
	flag.Parse()

	if *classCode == "" {
		log.Fatal("必须指定 -class-code")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var class model.Class
	if err := db.Where("code = ?", *classCode).First(&class).Error; err != nil {
		log.Fatalf("班级不存在: %s", *classCode)
	}

	if *cleanup {
		cleanupSeed(db, &class)
		return
	}

	rng := rand.New(rand.NewSource(42))
	seed(db, &class, rng, *students, *quizzes, *topics, *questions)
}

func seed(db *gorm.DB, class *model.Class, rng *rand.Rand, students, quizCount, topicCount, questionCount int) {
	var existing int64
	db.Model(&model.Quiz{}).
		Where("class_id = ? AND title LIKE ?", class.ID, seedQuizPrefix+"%").
		Count(&existing)
	if existing > 0 {
		log.Fatal("该班级已有种子数据，请先用 -cleanup 清理")
	}

	if topicCount < 1 {
		topicCount = 1
	}
	if topicCount > len(topicPool) {
		topicCount = len(topicPool)
	}
	topics := topicPool[:topicCount]

	// 学生与选课
	users := make([]model.User, 0, students)
	for i := 0; i < students; i++ {
		email := fmt.Sprintf("%s+%s_%d@example.com", seedUserPrefix, class.Code, i+1)
		var user model.User
		err := db.Where("email = ?", email).First(&user).Error
		if err != nil {
			user = model.User{
				FullName: fmt.Sprintf("Seed Ogrenci %d", i+1),
				Email:    email,
				Password: "seed",
				Role:     model.Student,
				Language: "tr",
			}
			if err := db.Create(&user).Error; err != nil {
				log.Fatalf("创建学生失败: %v", err)
			}
		}
		users = append(users, user)

		var enrollment model.Enrollment
		if err := db.Where("class_id = ? AND user_id = ?", class.ID, user.ID).First(&enrollment).Error; err != nil {
			db.Create(&model.Enrollment{
				ClassID:     class.ID,
				UserID:      user.ID,
				RoleInClass: model.Student,
				JoinedAt:    time.Now(),
			})
		}
	}

	// 已发布Quiz与题目
	createdQuizzes := make([]model.Quiz, 0, quizCount)
	for qi := 0; qi < quizCount; qi++ {
		quiz := model.Quiz{
			ClassID:   class.ID,
			Title:     fmt.Sprintf("%s Deneme Quiz %d", seedQuizPrefix, qi+1),
			AuthorID:  class.OwnerID,
			Published: true,
		}
		if err := db.Create(&quiz).Error; err != nil {
			log.Fatalf("创建Quiz失败: %v", err)
		}
		for qn := 0; qn < questionCount; qn++ {
			topicJSON, _ := json.Marshal([]string{topics[rng.Intn(len(topics))]})
			q := model.Question{
				QuizID: quiz.ID,
				Points: 1,
				Topics: topicJSON,
			}
			if qn%3 == 0 {
				q.Type = model.QuestionTrueFalse
				q.Text = fmt.Sprintf("Seed soru TF %d-%d", qi+1, qn+1)
				q.CorrectAnswer = model.EncodeAnswerValue("Doğru")
			} else {
				q.Type = model.QuestionMCQ
				q.Text = fmt.Sprintf("Seed soru MCQ %d-%d", qi+1, qn+1)
				choices, _ := json.Marshal(map[string]string{
					"A": "Secenek A", "B": "Secenek B", "C": "Secenek C", "D": "Secenek D",
				})
				q.Choices = choices
				q.CorrectAnswer = model.EncodeAnswerValue("A")
			}
			if err := db.Create(&q).Error; err != nil {
				log.Fatalf("创建题目失败: %v", err)
			}
		}
		createdQuizzes = append(createdQuizzes, quiz)
	}

	// 分层答题记录：差/中/好三档成功率
	for idx, user := range users {
		var successRate float64
		switch idx % 3 {
		case 0:
			successRate = 0.35
		case 1:
			successRate = 0.6
		default:
			successRate = 0.85
		}

		for _, quiz := range createdQuizzes {
			var qs []model.Question
			db.Where("quiz_id = ?", quiz.ID).Find(&qs)

			attemptCount := 1
			if idx%2 == 0 {
				attemptCount = 2
			}
			for ai := 0; ai < attemptCount; ai++ {
				var results []model.QuestionResult
				answers := make(map[uint]string, len(qs))
				score, maxScore := 0.0, 0.0
				for _, q := range qs {
					correct := rng.Float64() < successRate
					points := 0.0
					if correct {
						points = q.Points
						score += q.Points
					}
					maxScore += q.Points
					results = append(results, model.QuestionResult{
						QuestionID: q.ID,
						Correct:    correct,
						Points:     points,
					})
					answers[q.ID] = "A"
				}
				answersJSON, _ := json.Marshal(answers)
				resultsJSON, _ := json.Marshal(results)
				finished := time.Now().AddDate(0, 0, -rng.Intn(21))
				attempt := model.Attempt{
					QuizID:      quiz.ID,
					UserID:      user.ID,
					Answers:     answersJSON,
					PerQuestion: resultsJSON,
					Score:       score,
					MaxScore:    maxScore,
					StartedAt:   finished,
					FinishedAt:  &finished,
				}
				if err := db.Create(&attempt).Error; err != nil {
					log.Fatalf("创建答题记录失败: %v", err)
				}
			}
		}
	}

	log.Printf("Seed complete for class %s (%s). Students=%d, Quizzes=%d, Topics=%d",
		class.Title, class.Code, students, quizCount, topicCount)
}

func cleanupSeed(db *gorm.DB, class *model.Class) {
	var quizIDs []uint
	db.Model(&model.Quiz{}).
		Where("class_id = ? AND title LIKE ?", class.ID, seedQuizPrefix+"%").
		Pluck("id", &quizIDs)

	if len(quizIDs) > 0 {
		db.Where("quiz_id IN ?", quizIDs).Delete(&model.Attempt{})
		db.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{})
		db.Where("id IN ?", quizIDs).Delete(&model.Quiz{})
	}

	var userIDs []uint
	db.Model(&model.User{}).
		Where("email LIKE ?", seedUserPrefix+"+%").
		Pluck("id", &userIDs)

	if len(userIDs) > 0 {
		db.Where("class_id = ? AND user_id IN ?", class.ID, userIDs).Delete(&model.Enrollment{})
		db.Where("user_id IN ?", userIDs).Delete(&model.Attempt{})
	}

	log.Printf("Cleanup complete for class %s (%s)", class.Title, class.Code)
}
