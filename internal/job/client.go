package job

import "fmt"

// Position 职位信息
type Position struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Salary           string   `json:"salary"`
	Location         string   `json:"location"`
	Tags             []string `json:"tags"`
	Category         string   `json:"category"`
	Source           string   `json:"source"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	PostedTime       string   `json:"posted_time"`
	URL              string   `json:"url"`
}

// Client 招聘数据客户端
type Client interface {
	Search(keywords, location, category string, page, limit int) []Position
	HotJobs() []Position
	ParseJD(jdText string) *ParsedJD
}

// MockClient 内置职位库的模拟客户端，用于演示和测试
type MockClient struct {
	database []Position
}

func NewMockClient() *MockClient {
	return &MockClient{database: jobDatabase()}
}

// Search 按关键词/地点/类别过滤职位并分页。
// 关键词对标题、公司、标签做大小写不敏感匹配；
// category为空或"all"时不过滤。
func (c *MockClient) Search(keywords, location, category string, page, limit int) []Position {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	results := make([]Position, 0, len(c.database))
	for _, job := range c.database {
		if keywords != "" && !matchKeywords(&job, keywords) {
			continue
		}
		if location != "" && !containsFold(job.Location, location) {
			continue
		}
		if category != "" && category != "all" && job.Category != category {
			continue
		}

		job.PostedTime = "3天前"
		job.URL = fmt.Sprintf("https://example.com/job/%s", job.ID)
		results = append(results, job)
	}

	start := (page - 1) * limit
	if start >= len(results) {
		return []Position{}
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// HotJobs 热门职位，取前16条
func (c *MockClient) HotJobs() []Position {
	return c.Search("", "", "", 1, 16)
}
