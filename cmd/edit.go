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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eslsoft/jyutcollab/internal/adapter/apiclient"
	"github.com/eslsoft/jyutcollab/internal/adapter/localstore"
	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/server"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"
)

// editCmd opens a headless editing session against a running API: it
// restores local drafts, fetches a page of entries and prints the grid.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "以无界面方式打开编辑会话，列出词条并恢复本地草稿",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		logger, err := server.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}

		apiURL, _ := cmd.Flags().GetString("api")
		if apiURL == "" {
			apiURL = cfg.Editor.APIURL
		}
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = cfg.Editor.Token
		}

		var clientOpts []apiclient.Option
		if token != "" {
			clientOpts = append(clientOpts, apiclient.WithToken(token))
		}
		client := apiclient.New(apiURL, clientOpts...)

		session := editor.NewSession(
			apiclient.NewEntryService(client),
			apiclient.NewSuggestionService(client),
			taxonomy.New(),
			localstore.New(cfg.Editor.DraftDir),
			logger,
		)
		defer session.Close()

		filter := editFilterFromFlags(cmd)
		if err := session.Fetch(cmd.Context(), filter); err != nil {
			return err
		}

		printEntryGrid(cmd, session)
		return nil
	},
}

func editFilterFromFlags(cmd *cobra.Command) entity.EntryFilter {
	var filter entity.EntryFilter
	filter.Query, _ = cmd.Flags().GetString("keyword")
	filter.Dialect, _ = cmd.Flags().GetString("dialect")
	status, _ := cmd.Flags().GetString("status")
	filter.Status = entity.EntryStatus(strings.TrimSpace(status))
	filter.Page, _ = cmd.Flags().GetInt("page")
	filter.PerPage, _ = cmd.Flags().GetInt("per-page")
	return filter
}

func printEntryGrid(cmd *cobra.Command, session *editor.Session) {
	cols := session.Columns().All()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "")
	for _, col := range cols {
		headers = append(headers, col.Label)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, e := range session.Entries() {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, rowMarker(e))
		for _, col := range cols {
			cells = append(cells, session.Columns().CellDisplay(e, col))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()

	if page := session.Page(); page != nil {
		cmd.Printf("第 %d/%d 页，共 %d 条\n", page.Page, page.TotalPages, page.Total)
	}
}

// rowMarker flags rows with local-only state: + 未儲存、* 有未保存修改。
func rowMarker(e *entity.Entry) string {
	switch {
	case e.IsNew:
		return "+"
	case e.IsDirty:
		return "*"
	default:
		return ""
	}
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("api", "", "API 服务地址 (默认取 editor.api_url)")
	editCmd.Flags().String("token", "", "Bearer 令牌 (默认取 editor.token)")
	editCmd.Flags().StringP("keyword", "k", "", "按词头或释义搜索")
	editCmd.Flags().String("dialect", "", "按方言过滤")
	editCmd.Flags().String("status", "", "按审核状态过滤 (draft/pending_review/approved/rejected)")
	editCmd.Flags().Int("page", 1, "页码")
	editCmd.Flags().Int("per-page", 20, "每页条数")
}
