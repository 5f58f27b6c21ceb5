package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
)

// seedBook 导入文件中的单条图书记录
type seedBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// main 图书批量导入工具
// 使用方式：go run ./cmd/seed -file books.json
// 已存在的图书（标题+作者相同）跳过，重复执行是安全的
func main() {
	file := flag.String("file", "books.json", "图书JSON文件路径")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("读取文件失败: %v", err)
	}

	var books []seedBook
	if err := json.Unmarshal(data, &books); err != nil {
		log.Fatalf("解析JSON失败: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	bookRepo := mysql.NewBookRepository(db)
	bookService := book.NewService(bookRepo)

	ctx := context.Background()
	created, skipped := 0, 0

	for _, sb := range books {
		exists, err := bookRepo.ExistsByTitleAuthor(ctx, sb.Title, sb.Author)
		if err != nil {
			log.Fatalf("查询图书失败: %v", err)
		}
		if exists {
			skipped++
			continue
		}

		if _, err := bookService.CreateBook(ctx, sb.Title, sb.Author, sb.Description); err != nil {
			log.Printf("[WARN] 导入失败，跳过《%s》: %v", sb.Title, err)
			continue
		}
		created++
	}

	fmt.Printf("✓ 导入完成：新增%d本，跳过%d本（已存在）\n", created, skipped)
}
