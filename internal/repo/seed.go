package repo

import (
	"time"

	"certtrack/internal/domain"
)

// DefaultDepartments 部门统计的默认口径（config 可覆盖）
var DefaultDepartments = []string{"Engineering", "Analytics", "Infrastructure", "Management"}

// NewSeeded 内置演示数据：4 个用户、每人 3 张证书
// （以 2026-02-24 为参照日各含 active / expiring_soon / expired 一张，
// 管理员没有证书）
func NewSeeded(opts ...Option) *Store {
	return New(SeedUsers(), SeedCertificates(), opts...)
}

func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID: "u1", Name: "Ashish Dohare", Email: "ashish@gmail.com",
			Password: "user123", Role: domain.RoleUser,
			Department: "Engineering", Designation: "Software Engineer",
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Ashish",
		},
		{
			ID: "u2", Name: "Sohan Kumar Sahu", Email: "sohan@gmail.com",
			Password: "user123", Role: domain.RoleUser,
			Department: "Analytics", Designation: "Data Analyst",
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sohan",
		},
		{
			ID: "u3", Name: "T Deepak", Email: "deepak@gmail.com",
			Password: "user123", Role: domain.RoleUser,
			Department: "Infrastructure", Designation: "DevOps Engineer",
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Deepak",
		},
		{
			ID: "u4", Name: "Admin User", Email: "admin@gmail.com",
			Password: "admin123", Role: domain.RoleAdmin,
			Department: "Management", Designation: "Platform Administrator",
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Admin",
		},
	}
}

func SeedCertificates() []domain.Certificate {
	d := func(y int, m time.Month, day int) domain.Date { return domain.NewDate(y, m, day) }
	return []domain.Certificate{
		{
			ID: "c1", OwnerID: "u1",
			Title:        "AWS Certified Solutions Architect – Associate",
			Organization: "Amazon Web Services", Category: "Cloud",
			IssueDate: d(2024, 8, 10), ExpiryDate: d(2027, 8, 10),
			CredentialID:   "AWS-SAA-2024-0810",
			CertificateURL: "https://aws.amazon.com/verification",
			BadgeURL:       "https://images.credly.com/size/340x340/images/0e284c3f-5164-4b21-8660-0d84737941bc/image.png",
			Description:    "Validates expertise in designing distributed, scalable systems on AWS covering compute, storage, networking, and security best practices.",
		},
		{
			ID: "c2", OwnerID: "u1",
			Title:        "Meta React Developer Certification",
			Organization: "Meta", Category: "Frontend",
			IssueDate: d(2024, 3, 15), ExpiryDate: d(2026, 3, 10),
			CredentialID:   "META-RD-2024-0315",
			CertificateURL: "https://coursera.org/verify/meta-react",
			BadgeURL:       "https://images.credly.com/size/340x340/images/e91ed0b0-842b-417f-8d2f-b07535febdda/image.png",
			Description:    "Demonstrates proficiency in building modern React applications using hooks, context, state management, and component-based architecture.",
		},
		{
			ID: "c3", OwnerID: "u1",
			Title:        "Google Cloud Professional Cloud Architect",
			Organization: "Google Cloud", Category: "Cloud",
			IssueDate: d(2022, 11, 20), ExpiryDate: d(2024, 11, 20),
			CredentialID:   "GCP-PCA-2022-1120",
			CertificateURL: "https://cloud.google.com/certification",
			BadgeURL:       "https://images.credly.com/size/340x340/images/71c579e0-d5f1-4d2e-9975-f9d4efba68cd/image.png",
			Description:    "Validates ability to design, develop, and manage robust, scalable, and highly available solutions on Google Cloud Platform.",
		},
		{
			ID: "c4", OwnerID: "u2",
			Title:        "Tableau Desktop Specialist",
			Organization: "Tableau (Salesforce)", Category: "Data",
			IssueDate: d(2025, 5, 18), ExpiryDate: d(2028, 5, 18),
			CredentialID:   "TAB-DS-2025-0518",
			CertificateURL: "https://www.credly.com/badges/tableau",
			BadgeURL:       "https://images.credly.com/size/340x340/images/0f3f34db-c5c4-40de-8ead-c20a5f826b92/image.png",
			Description:    "Demonstrates foundational skills in Tableau for data visualization, dashboard design, and publishing interactive reports.",
		},
		{
			ID: "c5", OwnerID: "u2",
			Title:        "Microsoft Power BI Data Analyst Associate",
			Organization: "Microsoft", Category: "Data",
			IssueDate: d(2024, 4, 1), ExpiryDate: d(2026, 3, 8),
			CredentialID:   "MS-PBI-2024-0401",
			CertificateURL: "https://learn.microsoft.com/credentials",
			BadgeURL:       "https://images.credly.com/size/340x340/images/7e0db09d-e028-4dcd-8e79-c63a7e8bc5e0/image.png",
			Description:    "Validates skills in transforming raw data into actionable insights using Power BI, including DAX, Power Query, and report publishing.",
		},
		{
			ID: "c6", OwnerID: "u2",
			Title:        "IBM Data Science Professional Certificate",
			Organization: "IBM", Category: "Data",
			IssueDate: d(2022, 7, 14), ExpiryDate: d(2024, 7, 14),
			CredentialID:   "IBM-DS-2022-0714",
			CertificateURL: "https://coursera.org/verify/ibm-data-science",
			BadgeURL:       "https://images.credly.com/size/340x340/images/fa39f4f0-174a-4791-a6d4-90c4e8e78523/image.png",
			Description:    "Comprehensive program covering Python, SQL, data visualization, machine learning, and applied data science with real-world projects.",
		},
		{
			ID: "c7", OwnerID: "u3",
			Title:        "Certified Kubernetes Administrator (CKA)",
			Organization: "CNCF / Linux Foundation", Category: "DevOps",
			IssueDate: d(2025, 9, 5), ExpiryDate: d(2028, 9, 5),
			CredentialID:   "CKA-2025-0905",
			CertificateURL: "https://training.linuxfoundation.org/certification/cka",
			BadgeURL:       "https://images.credly.com/size/340x340/images/8b8ed108-e77d-4396-ac59-2504583b9d54/image.png",
			Description:    "Validates skills required to operate, configure, and troubleshoot Kubernetes clusters in production environments.",
		},
		{
			ID: "c8", OwnerID: "u3",
			Title:        "Docker Certified Associate (DCA)",
			Organization: "Docker Inc.", Category: "DevOps",
			IssueDate: d(2024, 6, 20), ExpiryDate: d(2026, 3, 15),
			CredentialID:   "DCA-2024-0620",
			CertificateURL: "https://www.docker.com/certification",
			BadgeURL:       "https://images.credly.com/size/340x340/images/08216781-93cb-4ba1-8110-8eb3401fa8ce/image.png",
			Description:    "Proves expertise in containerization using Docker, including image management, networking, security, and orchestration with Docker Swarm.",
		},
		{
			ID: "c9", OwnerID: "u3",
			Title:        "HashiCorp Certified: Terraform Associate",
			Organization: "HashiCorp", Category: "DevOps",
			IssueDate: d(2022, 3, 30), ExpiryDate: d(2024, 3, 30),
			CredentialID:   "HCP-TF-2022-0330",
			CertificateURL: "https://www.credly.com/badges/hashicorp-terraform",
			BadgeURL:       "https://images.credly.com/size/340x340/images/99289602-861e-4929-8277-773e63a2fa6f/image.png",
			Description:    "Validates understanding of Terraform concepts for infrastructure as code, including modules, state management, provisioners, and workspaces.",
		},
	}
}
