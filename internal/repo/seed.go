package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/cyberacademy/internal/models"
)

func img(photo string) *string {
	u := "https://images.unsplash.com/" + photo + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300"
	return &u
}

func SampleCourses() []models.Course {
	return []models.Course{
		{
			Title:       "Advanced Penetration Testing",
			Description: "Master the fundamentals of ethical hacking, penetration testing, and vulnerability assessment. Learn to think like a black hat to defend like a white hat.",
			Price:       "24999.00",
			Duration:    "8 weeks",
			Difficulty:  "ADVANCED",
			ImageURL:    img("photo-1550751827-4bd374c3f58b"),
			Tags:        []string{"penetration-testing", "ethical-hacking", "vulnerability-assessment"},
			Features:    []string{"40+ hands-on labs", "Certificate included", "24/7 discord support"},
			IsActive:    true,
		},
		{
			Title:       "Malware Development & Analysis",
			Description: "Deep dive into advanced penetration testing methodologies, exploit development, and red team operations. Real-world scenarios and live targets.",
			Price:       "41999.00",
			Duration:    "12 weeks",
			Difficulty:  "EXPERT",
			ImageURL:    img("photo-1526374965328-7f61d4dc18c5"),
			Tags:        []string{"malware", "reverse-engineering", "exploit-development"},
			Features:    []string{"Live target environments", "Exploit development", "OSCP preparation"},
			IsActive:    true,
		},
		{
			Title:       "Digital Forensics & Incident Response",
			Description: "Master digital forensics, incident response, and malware analysis. Learn to investigate cyber crimes and recover critical evidence.",
			Price:       "33999.00",
			Duration:    "10 weeks",
			Difficulty:  "EXPERT",
			ImageURL:    img("photo-1558494949-ef010cbdcc31"),
			Tags:        []string{"digital-forensics", "incident-response", "malware-analysis"},
			Features:    []string{"Malware analysis lab", "Memory forensics", "Court admissible reports"},
			IsActive:    true,
		},
		{
			Title:       "Web Application Hacking",
			Description: "Learn to exploit web applications using advanced techniques. Master OWASP Top 10, API security, and authentication bypass methods.",
			Price:       "29999.00",
			Duration:    "6 weeks",
			Difficulty:  "INTERMEDIATE",
			ImageURL:    img("photo-1555949963-aa79dcee981c"),
			Tags:        []string{"web-security", "owasp", "api-security"},
			Features:    []string{"OWASP Top 10 Exploitation", "API Security Testing", "Authentication Bypass"},
			IsActive:    true,
		},
		{
			Title:       "Wireless Network Exploitation",
			Description: "Master wireless security testing, WPA/WPA2 cracking, and radio frequency analysis. Learn to exploit wireless networks professionally.",
			Price:       "23999.00",
			Duration:    "5 weeks",
			Difficulty:  "ADVANCED",
			ImageURL:    img("photo-1580927752452-89d86da3fa0a"),
			Tags:        []string{"wireless-security", "wifi-hacking", "rf-analysis"},
			Features:    []string{"WPA/WPA2 Cracking", "Evil Twin Attacks", "Radio Frequency Analysis"},
			IsActive:    true,
		},
		{
			Title:       "Social Engineering Mastery",
			Description: "Learn the art of psychological manipulation, OSINT reconnaissance, and physical infiltration techniques used by elite hackers.",
			Price:       "16999.00",
			Duration:    "4 weeks",
			Difficulty:  "BEGINNER",
			ImageURL:    img("photo-1563986768609-322da13575f3"),
			Tags:        []string{"social-engineering", "osint", "psychological-manipulation"},
			Features:    []string{"Psychological Manipulation", "Phishing Campaigns", "OSINT Reconnaissance"},
			IsActive:    true,
		},
	}
}

type SeedResult struct {
	Courses      int
	AdminCreated bool
}

// Seed loads the sample catalog into an empty store and creates admin when
// no user with that username exists. admin.PasswordHash must already be set.
func Seed(ctx context.Context, s Store, admin *models.User) (SeedResult, error) {
	var res SeedResult

	existing, err := s.ListCourses(ctx)
	if err != nil {
		return res, err
	}
	if len(existing) == 0 {
		for _, c := range SampleCourses() {
			c := c
			if err := s.CreateCourse(ctx, &c); err != nil {
				return res, err
			}
			res.Courses++
		}
	}

	if admin == nil {
		return res, nil
	}
	_, err = s.GetUserByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		return res, nil
	case !errors.Is(err, ErrNotFound):
		return res, err
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return res, err
	}
	res.AdminCreated = true
	return res, nil
}
