/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	adapterrepo "github.com/eslsoft/jyutcollab/internal/adapter/repository"
	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database"
)

// dbInitCmd creates the database schema and optionally seeds an admin account.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库",
	Long:  "创建数据表与索引。可通过 --admin-email/--admin-password 同时创建一个管理员账号，便于首次部署后直接登录。",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminName, _ := cmd.Flags().GetString("admin-name")
		adminEmail, _ := cmd.Flags().GetString("admin-email")
		adminPassword, _ := cmd.Flags().GetString("admin-password")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		db, cleanup, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("连接数据库失败: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := database.InitSchema(ctx, db); err != nil {
			return fmt.Errorf("初始化数据库结构失败: %w", err)
		}
		cmd.Println("数据库初始化完成")

		if adminEmail == "" {
			return nil
		}

		admin, err := newAdminUser(adminName, adminEmail, adminPassword)
		if err != nil {
			return fmt.Errorf("管理员账号参数无效: %w", err)
		}
		users := adapterrepo.NewUserRepository(db)
		created, err := users.Create(ctx, admin)
		if err != nil {
			if errors.Is(err, entity.ErrUserAlreadyExists) {
				cmd.Printf("管理员账号已存在: %s\n", admin.Email)
				return nil
			}
			return fmt.Errorf("创建管理员账号失败: %w", err)
		}
		cmd.Printf("已创建管理员账号: %s (%s)\n", created.Name, created.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("admin-name", "管理员", "管理员显示名称")
	dbInitCmd.Flags().String("admin-email", "", "管理员邮箱 (留空则不创建)")
	dbInitCmd.Flags().String("admin-password", "", "管理员密码 (至少 8 位)")
}

// newAdminUser validates the seed parameters and builds an admin user with a
// bcrypt password hash, mirroring what the register flow produces.
func newAdminUser(name, email, password string) (*entity.User, error) {
	user := &entity.User{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  entity.RoleAdmin,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("密码长度至少 8 位")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	return user, nil
}
