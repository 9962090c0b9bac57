package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"pensieve-tui/internal/app"
	"pensieve-tui/internal/tui"

	"github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func loadApplication() (*app.Application, error) {
	_ = godotenv.Load()
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return nil, err
	}
	return app.NewApplication(cfg), nil
}

func main() {
	root := &cobra.Command{
		Use:     "pensieve",
		Short:   "Pensieve - 저장된 대화 아카이브 브라우저",
		Long:    "Pensieve is a terminal dashboard for browsing, searching and managing saved conversations.\n\nRun without arguments for the interactive TUI, or use the subcommands for scripting.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			email := loginEmail
			password := loginPassword
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("이메일: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("비밀번호: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}
			if err := application.Login(context.Background(), email, password); err != nil {
				return err
			}
			fmt.Println("로그인되었습니다.")
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	root.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			application.Logout()
			fmt.Println("로그아웃되었습니다.")
			return nil
		},
	}
	root.AddCommand(logoutCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			if _, err := application.Reload(context.Background()); err != nil {
				return err
			}
			convs := application.Search(listQuery)
			if len(convs) == 0 {
				fmt.Println("저장된 대화가 없습니다")
				return nil
			}
			for _, conv := range convs {
				tags := ""
				if t := conv.Tags(); len(t) > 0 {
					tags = "  #" + strings.Join(t, " #")
				}
				fmt.Printf("%s  %s  %s · %d개 메시지%s\n",
					conv.ID, conv.Label(), app.FormatUpdatedAt(conv.UpdatedAt), len(conv.Messages), tags)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listQuery, "query", "", "filter by title, tags or message content")
	root.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			conv, err := application.Client.GetConversation(context.Background(), args[0])
			if err != nil {
				return err
			}
			md := tui.NewMarkdownRenderer()
			if showPlain {
				md = tui.NewPlainRenderer()
			}
			fmt.Println(tui.RenderConversationDetail(conv, md, 100, tui.NewNoColorTheme()))
			return nil
		},
	}
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "skip markdown rendering, escape only")
	root.AddCommand(showCmd)

	downloadCmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Save one conversation as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			path, err := application.Download(context.Background(), args[0], downloadOut)
			if err != nil {
				return err
			}
			fmt.Println("저장했습니다:", path)
			return nil
		},
	}
	downloadCmd.Flags().StringVar(&downloadOut, "out", "", "output directory (defaults to the configured download dir)")
	root.AddCommand(downloadCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			if !deleteYes {
				fmt.Print("정말로 이 대화를 삭제하시겠습니까? (y/N) ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Println("취소되었습니다.")
					return nil
				}
			}
			if err := application.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("대화가 삭제되었습니다.")
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	root.AddCommand(deleteCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	loginEmail    string
	loginPassword string
	listQuery     string
	showPlain     bool
	downloadOut   string
	deleteYes     bool
)
