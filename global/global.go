package global

import (
	"os"

	"golang.org/x/term"
)

var (
	IsTerminal       bool = term.IsTerminal(int(os.Stdin.Fd()))  //是否是交互式环境,false表示可能是管道或重定向
	IsOutputTerminal bool = term.IsTerminal(int(os.Stdout.Fd())) //stdout 是否为终端,决定是否输出颜色和进度条
)
