// Package seed installs the launch catalogs: boosts, tasks, articles, and
// promo codes. Seeding is idempotent; a catalog table that already has rows
// is left untouched.
package seed

import (
	"gorm.io/gorm"

	"github.com/shercoin/shercoin/models"
	"github.com/shercoin/shercoin/utils"
)

// Run seeds every empty catalog table and invalidates catalog caches when
// anything was written.
func Run(db *gorm.DB) error {
	seeded := false

	for _, step := range []struct {
		name string
		fn   func(*gorm.DB) (bool, error)
	}{
		{"boosts", seedBoosts},
		{"tasks", seedTasks},
		{"articles", seedArticles},
		{"promo_codes", seedPromoCodes},
	} {
		wrote, err := step.fn(db)
		if err != nil {
			return err
		}
		if wrote {
			utils.Sugar.Infof("seeded %s catalog", step.name)
			seeded = true
		}
	}

	if seeded {
		utils.InvalidateByPrefix("catalog:")
	}
	return nil
}

func tableEmpty(db *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedBoosts(db *gorm.DB) (bool, error) {
	empty, err := tableEmpty(db, &models.Boost{})
	if err != nil || !empty {
		return false, err
	}

	boosts := []models.Boost{
		{Code: models.BoostDoubleTap, Name: "SherKuch", Description: "30 daqiqa 2x bosish", DurationSeconds: 1800, Price: 5000},
		{Code: models.BoostUnlimitedEnergy, Name: "Cheksiz energiya", Description: "10 daqiqa energiya cheklanmaydi", DurationSeconds: 600, Price: 3000},
		{Code: models.BoostDoubleHourly, Name: "Soatlik 2x", Description: "1 soat passiv daromad ikki baravar", DurationSeconds: 3600, Price: 7000},
		{Code: models.BoostAutoTap, Name: "AvtoTap", Description: "5 daqiqa avto bosish", DurationSeconds: 300, Price: 10000},
	}
	return true, db.Create(&boosts).Error
}

func seedTasks(db *gorm.DB) (bool, error) {
	empty, err := tableEmpty(db, &models.Task{})
	if err != nil || !empty {
		return false, err
	}

	tasks := []models.Task{
		{Type: models.TaskTypeDaily, Title: "1000 marta bos", Description: "Bugun 1000 marta SherCoin bosing", Reward: 500, IsActive: true},
		{Type: models.TaskTypeOnce, Title: "Telegram kanalga a'zo bo'ling", Description: "SherCoin yangiliklar kanaliga qo'shiling", Reward: 1000, Link: "https://t.me/shercoin", IsActive: true},
		{Type: models.TaskTypeOnce, Title: "3 ta do'st chaqiring", Description: "Kamida 3 ta do'stingizni taklif qiling", Reward: 2000, IsActive: true},
		{Type: models.TaskTypeSpecial, Title: "5000 SherCoin to'plang", Description: "Jami balansingizni 5000 ga yetkazing", Reward: 500, IsActive: true},
		{Type: models.TaskTypeDaily, Title: "Bir maqola o'qing", Description: "SherMaktabdan bitta maqola o'qib tugatish", Reward: 300, IsActive: true},
	}
	return true, db.Create(&tasks).Error
}

func seedArticles(db *gorm.DB) (bool, error) {
	empty, err := tableEmpty(db, &models.Article{})
	if err != nil || !empty {
		return false, err
	}

	articles := []models.Article{
		{
			Title: "Onlayn marketing asoslari",
			Content: utils.Sanitize(`<h2>Onlayn Marketing nima?</h2>
<p>Onlayn marketing - bu internetda mahsulot va xizmatlarni targ'ib qilish san'ati. Bugungi kunda har qanday biznes uchun onlayn mavjudlik juda muhim.</p>
<h3>Asosiy yo'nalishlar:</h3>
<ul>
<li><strong>SMM (Social Media Marketing)</strong> - ijtimoiy tarmoqlarda faollik</li>
<li><strong>SEO</strong> - qidiruv tizimlarida ko'rinish</li>
<li><strong>Content Marketing</strong> - foydali kontent yaratish</li>
<li><strong>Email Marketing</strong> - elektron pochta orqali aloqa</li>
</ul>
<p>Onlayn marketing - bu uzluksiz jarayon. Sabr va izchillik muvaffaqiyat kaliti!</p>`),
			Reward:   50,
			IsActive: true,
		},
		{
			Title: "Telegram bot orqali biznes",
			Content: utils.Sanitize(`<h2>Telegram botlar - biznes uchun kuchli vosita</h2>
<p>Telegram botlari mijozlar bilan avtomatik muloqot qilish, buyurtmalarni qabul qilish va xizmat ko'rsatish uchun mukammal vositadir.</p>
<ul>
<li>24/7 avtomatik ishlash</li>
<li>Tez va qulay mijozlar aloqasi</li>
<li>To'lov tizimlarini integratsiya</li>
<li>Marketing kampaniyalari uchun kanal</li>
</ul>
<p>Telegram bot yaratish uchun dasturlash bilimi talab etiladi, lekin natija bunga arziydi!</p>`),
			Reward:   50,
			IsActive: true,
		},
		{
			Title: "Kiberxavfsizlik 10 qoidasi",
			Content: utils.Sanitize(`<h2>Internetda xavfsiz bo'lish qoidalari</h2>
<p>Raqamli dunyoda shaxsiy ma'lumotlaringizni himoya qilish juda muhim.</p>
<ol>
<li><strong>Kuchli parollar ishlating</strong> - kamida 12 belgi</li>
<li><strong>Ikki bosqichli autentifikatsiya</strong> - barcha muhim akkauntlarda yoqing</li>
<li><strong>Shubhali havolalarga bosmang</strong> - phishing hujumlaridan ehtiyot bo'ling</li>
<li><strong>Dasturiy ta'minotni yangilang</strong></li>
<li><strong>Ma'lumotlarni zaxiralang</strong> - muhim fayllarning nusxasini saqlang</li>
</ol>
<p>Esda tuting: xavfsizlik - bu bir martalik emas, doimiy jarayondir!</p>`),
			Reward:   50,
			IsActive: true,
		},
	}
	return true, db.Create(&articles).Error
}

func seedPromoCodes(db *gorm.DB) (bool, error) {
	empty, err := tableEmpty(db, &models.PromoCode{})
	if err != nil || !empty {
		return false, err
	}

	promos := []models.PromoCode{
		{Code: "SHERCOIN2024", Reward: 1000, MaxUsage: 1000, IsActive: true},
		{Code: "WELCOME500", Reward: 500, MaxUsage: 5000, IsActive: true},
	}
	return true, db.Create(&promos).Error
}
