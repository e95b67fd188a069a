package main

import "realestate-crm.com/realestate-crm/cmd"

func main() {
	cmd.Execute()
}
